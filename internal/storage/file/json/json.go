package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/pitch-guess/internal/storage"
)

// Store persists values as json files. It is used for the raw feed snapshot,
// where being able to inspect the cache by hand is worth the extra bytes.
type Store struct {
}

func NewStore() *Store {
	return &Store{}
}

// Store saves the given value as json into the given path, overwriting any previous snapshot.
func (s *Store) Store(path string, value interface{}) error {
	if _, err := storage.MakePath(filepath.Dir(path), filepath.Base(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}
	defer f.Close()

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value for '%s': %w", path, err)
	}

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("could not write bytes to file '%s': %w", path, err)
	}
	return nil
}

// Load loads the value from the given path.
func (s *Store) Load(path string, value interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", path, storage.ErrNotFound)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %s: %w", path, err.Error(), storage.ErrCouldNotLoad)
	}
	return nil
}
