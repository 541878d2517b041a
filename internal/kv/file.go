package kv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each slot in its own file under basePath. Writes go to a
// temporary file that is renamed into place, so a slot is either fully
// replaced or left as it was.
type FileStore struct {
	basePath string
}

// NewFileStore constructs a file-backed store rooted at basePath.
func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// BasePath exposes the store root path (primarily for testing).
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// SlotPath builds the path of the file holding key.
func SlotPath(basePath, key string) string {
	return filepath.Join(basePath, fmt.Sprintf("%s.json", key))
}

// Get reads the slot file for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	if s == nil {
		return "", false, ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(SlotPath(s.basePath, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set atomically replaces the slot file for key.
func (s *FileStore) Set(key, value string) error {
	if s == nil {
		return ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return err
	}
	target := SlotPath(s.basePath, key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data := []byte(value)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
