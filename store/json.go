package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pthm-cable/dodge/components"
)

// JSONFileStore keeps a single record in a JSON file.
type JSONFileStore struct {
	path     string
	defaults components.Genome

	mu sync.Mutex
}

// NewJSONFileStore creates a store backed by path. Fields missing from the
// file on load are taken from defaults.
func NewJSONFileStore(path string, defaults components.Genome) *JSONFileStore {
	return &JSONFileStore{path: path, defaults: defaults}
}

// Path returns the backing file path.
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Init(_ context.Context) error {
	if s.path == "" {
		return errors.New("json store path is required")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}
	return nil
}

// Save overwrites the file with rec.
func (s *JSONFileStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encoding genome record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFileStore) Load(_ context.Context) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading %s: %w", s.path, err)
	}
	rec, err := DecodeRecord(data, s.defaults)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}
