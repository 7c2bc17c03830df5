package admin

import (
	"context"
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
)

// ServiceAPI is the surface the handler needs from the admin service.
type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*Profile, error)
	Authenticate(ctx context.Context, adminID, password string) (*Profile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Tokens  auth.TokenGeneratorAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, tokens auth.TokenGeneratorAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc, Tokens: tokens}
}

// Signup registers an admin account. The route itself is admin-gated.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, profile)
}

type loginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Admin        *Profile `json:"admin"`
}

// Login authenticates an admin and issues a token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	profile, err := h.Service.Authenticate(r.Context(), dto.AdminID, dto.Password)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	principal := &internal.Principal{
		ID:    profile.AdminID,
		Email: profile.Email,
		Role:  internal.RoleAdmin,
	}
	tokens, err := auth.IssueTokens(h.Tokens, principal)
	if err != nil {
		h.Logger.Error("token issuance failed", "admin_id", profile.AdminID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	h.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Admin:        profile,
	})
}
