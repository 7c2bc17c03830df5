package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/google/uuid"
)

// DefaultMaxSizeBytes caps uploads at 5 MiB unless configured otherwise.
const DefaultMaxSizeBytes = 5 << 20

var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
}

// Service validates and stores document uploads, and vouches for document
// URLs during asset validation.
type Service struct {
	storage Storage
	baseURL string
	maxSize int64
	logger  *slog.Logger
}

func NewService(storage Storage, baseURL string, maxSize int64, logger *slog.Logger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeBytes
	}
	return &Service{
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Store checks type and size, then persists the file under a random name so
// original filenames never reach the filesystem.
func (s *Service) Store(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*Document, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		s.logger.Warn("upload rejected", "content_type", contentType, "filename", header.Filename)
		return nil, internal.NewUploadRejectedError(
			fmt.Sprintf("unsupported file type %q, allowed types are pdf, jpeg, jpg, png", contentType))
	}

	if header.Size > s.maxSize {
		s.logger.Warn("upload rejected", "size", header.Size, "max", s.maxSize)
		return nil, internal.NewUploadRejectedError(
			fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxSize))
	}

	filename := uuid.New().String() + ext
	reader := io.LimitReader(file, s.maxSize)

	if err := s.storage.Save(ctx, filename, contentType, reader); err != nil {
		s.logger.Error("failed to store upload", "filename", filename, "error", err)
		return nil, internal.NewStorageError("failed to store file", err)
	}

	doc := &Document{
		URL:        s.baseURL + "/" + filename,
		Filename:   filename,
		Size:       header.Size,
		UploadedAt: time.Now().UTC(),
	}
	s.logger.Info("document stored", "filename", filename, "size", header.Size)
	return doc, nil
}

// Accepts reports whether the URL points into this service's upload space.
// A prefix check is enough: stored names are server-generated UUIDs.
func (s *Service) Accepts(url string) bool {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return false
	}
	name := strings.TrimPrefix(url, s.baseURL+"/")
	return name != "" && name == filepath.Base(name)
}
