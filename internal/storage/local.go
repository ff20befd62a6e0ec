package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage on the local filesystem, rooted at basePath.
// Uploaded files land under per-user subtrees created on demand.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage ensures the root directory exists and returns a ready store.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes reader to basePath/key, creating parent directories as needed.
func (l *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Remove deletes the file at basePath/key.
func (l *LocalStorage) Remove(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(l.basePath, filepath.FromSlash(key))); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
