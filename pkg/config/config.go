// Package config loads augur configuration from TOML, YAML, or JSON
// files with sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/panbanda/augur/pkg/analyzer/smells"
)

// Config holds all configuration options for augur.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Smell detection thresholds
	Thresholds smells.Thresholds `koanf:"thresholds"`

	// Defect prediction settings
	Defect DefectConfig `koanf:"defect"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Result persistence settings
	Store StoreConfig `koanf:"store"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls which pipeline stages run.
type AnalysisConfig struct {
	Smells  bool `koanf:"smells"`
	Defect  bool `koanf:"defect"`
	Tests   bool `koanf:"tests"`
	Repairs bool `koanf:"repairs"`
}

// DefectConfig controls the defect predictor.
type DefectConfig struct {
	// UseClassifier selects the trained model over the heuristic.
	UseClassifier bool   `koanf:"use_classifier"`
	Samples       int    `koanf:"samples"`
	Seed          uint64 `koanf:"seed"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns"`
	Dirs     []string `koanf:"dirs"`
}

// StoreConfig controls result persistence.
type StoreConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Smells:  true,
			Defect:  true,
			Tests:   true,
			Repairs: true,
		},
		Thresholds: smells.DefaultThresholds(),
		Defect: DefectConfig{
			UseClassifier: false,
			Samples:       1000,
			Seed:          42,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.py",
				"test_*.py",
				"conftest.py",
			},
			Dirs: []string{
				".git",
				".augur",
				"venv",
				".venv",
				"__pycache__",
				"node_modules",
				"build",
				"dist",
			},
		},
		Store: StoreConfig{
			Enabled: false,
			Dir:     ".augur/results",
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}

	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}

	return false
}
