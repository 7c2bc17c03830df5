package department

import (
	"context"
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
)

// ServiceAPI is the surface the handler needs from the department service.
type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*Profile, error)
	Authenticate(ctx context.Context, departmentID, password string) (*Profile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Tokens  auth.TokenGeneratorAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, tokens auth.TokenGeneratorAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc, Tokens: tokens}
}

// Signup registers a department account.
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
	Department   *Profile `json:"department"`
}

// Login authenticates a department and issues a token pair.
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

	profile, err := h.Service.Authenticate(r.Context(), dto.DepartmentID, dto.Password)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	principal := &internal.Principal{
		ID:    profile.DepartmentID,
		Email: profile.Email,
		Role:  internal.RoleDepartment,
	}
	tokens, err := auth.IssueTokens(h.Tokens, principal)
	if err != nil {
		h.Logger.Error("token issuance failed", "department_id", profile.DepartmentID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	h.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Department:   profile,
	})
}
