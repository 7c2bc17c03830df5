package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/frahmantamala/asset-management/internal/upload"
)

// Storage writes uploads to a directory on local disk.
type Storage struct {
	dir string
}

func NewStorage(dir string) (upload.Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Save(_ context.Context, filename string, _ string, r io.Reader) error {
	path := filepath.Join(s.dir, filepath.Base(filename))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
