package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned when there is no cached artifact at the given path.
	ErrNotFound = errors.New("not found")
	// ErrCouldNotLoad is returned when a cached artifact exists but cannot be decoded.
	ErrCouldNotLoad = errors.New("could not load")
)

// Persistence stores and retrieves run artifacts by path.
type Persistence interface {
	Store(path string, value interface{}) error
	Load(path string, value interface{}) error
}

// Exists checks for a cached artifact at the given path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// MakePath makes sure the parent directory exists and returns the full file path.
func MakePath(parent string, file string) (string, error) {
	info, err := os.Stat(parent)
	if err != nil {
		if err := os.MkdirAll(parent, os.ModePerm); err != nil {
			return "", fmt.Errorf("could not make dir: %s: %w", parent, err)
		}
	} else if !info.IsDir() {
		return "", fmt.Errorf("path given is not a dir: %s", parent)
	}
	return filepath.Join(parent, file), nil
}
