package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file too large")

// Store writes upload payloads to a directory on disk. Every file gets a
// fresh uuid-prefixed name, so concurrent uploads of identically named files
// cannot collide.
type Store struct {
	dir     string
	maxSize int64
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory files are stored under.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk and returns the web path it is
// served under. The partial file is removed on a failed copy.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "-" + filepath.Base(file.Filename)
	destPath := filepath.Join(s.dir, name)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("cannot create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes a stored file given the web path returned by Save.
func (s *Store) Remove(webPath string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(webPath)))
}
