package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panbanda/augur/pkg/models"
)

// Dir is a Store backed by one JSON file per result in a directory.
// Writes go through a temp file and rename so readers never observe a
// partial result.
type Dir struct {
	mu  sync.Mutex
	dir string
}

var _ Store = (*Dir)(nil)

// NewDir creates a directory-backed store, creating dir if needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Dir{dir: dir}, nil
}

// Save writes the result as JSON under id, replacing any previous
// entry.
func (d *Dir) Save(result *models.AnalysisResult, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result %s: %w", id, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tmp, err := os.CreateTemp(d.dir, id+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), d.path(id))
}

// Get reads the result saved under id.
func (d *Dir) Get(id string) (*models.AnalysisResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding result %s: %w", id, err)
	}
	return &result, nil
}

// List returns the ids of all stored results.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func (d *Dir) path(id string) string {
	return filepath.Join(d.dir, id+".json")
}
