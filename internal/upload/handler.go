package upload

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

// ServiceAPI is the surface the handler needs from the upload service.
type ServiceAPI interface {
	Store(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*Document, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	MaxSize int64
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, maxSize int64) *Handler {
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeBytes
	}
	return &Handler{BaseHandler: base, Service: svc, MaxSize: maxSize}
}

// UploadDocument accepts a multipart form with a single "file" field.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxSize+4096)

	if err := r.ParseMultipartForm(h.MaxSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	doc, err := h.Service.Store(r.Context(), file, header)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, doc)
}
