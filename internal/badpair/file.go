package badpair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore reads and writes the flat bad_pairs.json file: [["DAI","XYZ"], ...].
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns an empty list when the file does not exist yet.
func (f *FileStore) Load(_ context.Context) ([]Pair, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bad pairs: %w", err)
	}

	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("decode bad pairs %s: %w", f.path, err)
	}
	return pairs, nil
}

// Save merges pairs into what is on disk and replaces the file atomically.
func (f *FileStore) Save(ctx context.Context, pairs []Pair) error {
	existing, err := f.Load(ctx)
	if err != nil {
		return err
	}
	merged := NewSet(existing...)
	for _, p := range pairs {
		merged.Add(p.A, p.B)
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode bad pairs: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".bad_pairs-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write bad pairs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close bad pairs: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace bad pairs: %w", err)
	}
	return nil
}
