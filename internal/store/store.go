// Package store provides atomic JSON persistence for the history and
// frecency stores (C18). A write never leaves a reader observing a
// half-written file.
//
// Grounded on jcorbin-soc's use of github.com/google/renameio for safe
// state writes (cmd/poc/main.go's streamStore.save), generalized to a
// typed JSON load/save pair instead of a raw byte stream.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
)

// JSONStore persists a value of type T as JSON at a fixed path.
type JSONStore[T any] struct {
	path string
}

// NewJSONStore returns a store rooted at path.
func NewJSONStore[T any](path string) *JSONStore[T] {
	return &JSONStore[T]{path: path}
}

// Load reads and unmarshals the stored value. A missing file is not an
// error: it returns the zero value of T. A corrupt file is also not an
// error here; callers are expected to treat the zero value as "start
// empty" per spec.md's history/frecency recovery rule.
func (s *JSONStore[T]) Load() (T, error) {
	var v T
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, nil
	}
	return v, nil
}

// Save atomically writes v as JSON to the store's path, creating parent
// directories as needed.
func (s *JSONStore[T]) Save(v T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating data directory")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling store")
	}
	if err := renameio.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing store file")
	}
	return nil
}
