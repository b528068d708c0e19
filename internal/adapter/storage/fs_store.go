package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSPhotoStore writes photos under a local directory.
type FSPhotoStore struct {
	dir string
}

func NewFSPhotoStore(dir string) (*FSPhotoStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(filepath.Join(dir, "photos"), 0o750); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &FSPhotoStore{dir: dir}, nil
}

func (s *FSPhotoStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := photoKey(filename)

	f, err := os.OpenFile(s.path(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(s.path(key))
		return "", fmt.Errorf("write photo: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSPhotoStore) Delete(ctx context.Context, key string) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid photo key %q", key)
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FSPhotoStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}
