package auth

import (
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
	"github.com/frahmantamala/asset-management/internal/transport"
)

// RefreshTokenDTO carries the refresh token presented to mint a new pair.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}

func (dto RefreshTokenDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("refreshToken", dto.RefreshToken).Required()
	return v.Validate()
}

// Handler serves the token maintenance endpoints shared by both roles:
// refresh and logout. Signup and login live with their owning feature
// packages.
type Handler struct {
	*transport.BaseHandler
	Tokens TokenGeneratorAPI
}

func NewHandler(base *transport.BaseHandler, tokens TokenGeneratorAPI) *Handler {
	return &Handler{BaseHandler: base, Tokens: tokens}
}

// RefreshToken exchanges a valid refresh token for a fresh access/refresh
// pair. Expired or malformed tokens get the same 401.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if appErr := dto.Validate(); appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	claims, err := h.Tokens.ValidateToken(dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("token refresh failed", "error", err)
		h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	principal := &internal.Principal{
		ID:    claims.PrincipalID,
		Email: claims.Email,
		Role:  claims.Role,
	}

	tokens, err := IssueTokens(h.Tokens, principal)
	if err != nil {
		h.Logger.Error("token refresh: issuing tokens failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout validates the presented access token and returns 204. Tokens are
// stateless, so there is nothing to revoke server-side; clients discard
// their copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Tokens.ValidateToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
