// Package scanner finds Python source files under a directory, honoring
// the configured exclusions.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/panbanda/augur/pkg/config"
)

// Scanner finds source files in a directory.
type Scanner struct {
	config *config.Config
}

// New creates a file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanDir recursively collects .py files under root, in walk order.
// Excluded directories are pruned without descending.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if rel != "." && s.excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if s.config.ShouldExclude(rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Resolve expands a path argument into the files to analyze: a file
// yields itself, a directory is scanned recursively.
func (s *Scanner) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return s.ScanDir(path)
	}
	return []string{path}, nil
}

func (s *Scanner) excludedDir(name string) bool {
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}
