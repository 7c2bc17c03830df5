package otp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

// ServiceAPI is the surface the handler needs from the verification service.
type ServiceAPI interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

type sendRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SendCode issues a verification code to the given address.
func (h *Handler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Send(r.Context(), req.Email); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "verification code sent"})
}

// VerifyCode checks a submitted code and marks the address verified.
func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Verify(r.Context(), req.Email, req.Code); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}
