package gob

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/pitch-guess/internal/storage"
)

// Store persists values as opaque gob blobs. It is used for fitted models,
// which are not meant to be readable or compatible across versions.
type Store struct {
}

func NewStore() *Store {
	return &Store{}
}

// Store encodes the given value into the given path, overwriting any previous blob.
func (s *Store) Store(path string, value interface{}) error {
	if _, err := storage.MakePath(filepath.Dir(path), filepath.Base(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(value); err != nil {
		return fmt.Errorf("could not encode value for '%s': %w", path, err)
	}
	return nil
}

// Load decodes the blob at the given path into the given value.
func (s *Store) Load(path string, value interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file '%s': %w", path, storage.ErrNotFound)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(value); err != nil {
		return fmt.Errorf("could not decode '%s': %s: %w", path, err.Error(), storage.ErrCouldNotLoad)
	}
	return nil
}
