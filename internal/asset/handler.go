package asset

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto SubmissionDTO, actorID string) (*Asset, error)
	GetByID(ctx context.Context, assetID string) (*Asset, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Asset, error)
	ListByDepartment(ctx context.Context, departmentID string, limit, offset int) ([]*Asset, error)
	Update(ctx context.Context, assetID string, dto UpdateDTO) (*Asset, error)
	Delete(ctx context.Context, assetID string, actorID string) (bool, error)
	Approve(ctx context.Context, assetID string, actor *internal.Principal) (*Asset, error)
	Reject(ctx context.Context, assetID string, reason string, actor *internal.Principal) (*Asset, error)
	SetStatus(ctx context.Context, assetID, status string, actor *internal.Principal) (*Asset, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.Logger.Error("CreateAsset: principal not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(r.Context(), dto, principal.ID)
	if err != nil {
		h.Logger.Error("CreateAsset: service error", "error", err, "asset_id", dto.AssetID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAsset: asset created",
		"asset_id", a.AssetID,
		"asset_type", a.AssetType,
		"actor_id", principal.ID)

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	a, err := h.Service.GetByID(r.Context(), assetID)
	if err != nil {
		h.Logger.Error("GetAsset: service error", "error", err, "asset_id", assetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// ListAssets serves both department-scoped and admin listings: departments
// see their own assets, admins see everything unless a department filter is
// supplied.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.Logger.Error("ListAssets: principal not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)

	departmentID := r.URL.Query().Get("departmentId")
	if !principal.IsAdmin() {
		departmentID = principal.ID
	}

	var (
		assets []*Asset
		err    error
	)
	if departmentID != "" {
		assets, err = h.Service.ListByDepartment(r.Context(), departmentID, limit, offset)
	} else {
		assets, err = h.Service.ListAll(r.Context(), limit, offset)
	}
	if err != nil {
		h.Logger.Error("ListAssets: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(r.Context(), assetID, dto)
	if err != nil {
		h.Logger.Error("UpdateAsset: service error", "error", err, "asset_id", assetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetID := chi.URLParam(r, "id")

	removed, err := h.Service.Delete(r.Context(), assetID, principal.ID)
	if err != nil {
		h.Logger.Error("DeleteAsset: service error", "error", err, "asset_id", assetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}

func (h *Handler) ApproveAsset(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetID := chi.URLParam(r, "id")

	a, err := h.Service.Approve(r.Context(), assetID, principal)
	if err != nil {
		h.Logger.Error("ApproveAsset: service error", "error", err, "asset_id", assetID, "actor_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveAsset: asset approved", "asset_id", assetID, "actor_id", principal.ID)
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) RejectAsset(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetID := chi.URLParam(r, "id")

	var dto UpdateStatusDTO
	// Body is optional on reject; a missing reason is allowed.
	_ = json.NewDecoder(r.Body).Decode(&dto)

	a, err := h.Service.Reject(r.Context(), assetID, dto.Reason, principal)
	if err != nil {
		h.Logger.Error("RejectAsset: service error", "error", err, "asset_id", assetID, "actor_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RejectAsset: asset rejected",
		"asset_id", assetID,
		"actor_id", principal.ID,
		"reason", dto.Reason)
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAssetStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetID := chi.URLParam(r, "id")

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAssetStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.SetStatus(r.Context(), assetID, dto.Status, principal)
	if err != nil {
		h.Logger.Error("UpdateAssetStatus: service error", "error", err, "asset_id", assetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
