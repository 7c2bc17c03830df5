package upload

import (
	"context"
	"io"
	"time"
)

// Storage persists uploaded document bytes under a generated name.
type Storage interface {
	Save(ctx context.Context, filename string, contentType string, r io.Reader) error
}

// Document describes a stored upload.
type Document struct {
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}
