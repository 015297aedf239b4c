package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/normalize"
	"github.com/cognicore/lexfeat/pkg/lexfeat/pmi"
)

// Config describes a feature pipeline and where its reference data lives.
type Config struct {
	Language         string `yaml:"language"`
	BuiltinStopwords bool   `yaml:"builtin_stopwords"`
	StoplistPath     string `yaml:"stoplist"`
	DatabasePath     string `yaml:"database"`
	Strategy         string `yaml:"strategy"`
	LemmasPath       string `yaml:"lemmas"`
	Tagging          bool   `yaml:"tagging"`
	NGram            NGram  `yaml:"ngram"`
}

// NGram configures n-gram extraction and collocation scoring.
type NGram struct {
	N        int    `yaml:"n"`
	MinCount int    `yaml:"min_count"`
	TopK     int    `yaml:"top_k"`
	Measure  string `yaml:"measure"`
}

// Default returns the configuration used when no file is given: English
// built-in stop words, stemming, bigrams scored by PMI.
func Default() Config {
	return Config{
		Language:         "english",
		BuiltinStopwords: true,
		Strategy:         "stem",
		NGram: NGram{
			N:        2,
			MinCount: 1,
			TopK:     10,
			Measure:  "pmi",
		},
	}
}

// Load reads a pipeline configuration from a YAML file. Unset fields take
// their Default values and relative resource paths are resolved against the
// file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	dir := filepath.Dir(path)
	cfg.StoplistPath = resolve(dir, cfg.StoplistPath)
	cfg.LemmasPath = resolve(dir, cfg.LemmasPath)
	cfg.DatabasePath = resolve(dir, cfg.DatabasePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("%w: language is required", internalerr.ErrInvalidConfig)
	}
	if _, err := normalize.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := pmi.ParseMeasure(c.NGram.Measure); err != nil {
		return err
	}
	if c.NGram.N < 1 {
		return fmt.Errorf("%w: ngram.n must be >= 1, got %d", internalerr.ErrInvalidConfig, c.NGram.N)
	}
	if c.NGram.MinCount < 0 {
		return fmt.Errorf("%w: ngram.min_count must be >= 0, got %d", internalerr.ErrInvalidConfig, c.NGram.MinCount)
	}
	if c.NGram.TopK < 0 {
		return fmt.Errorf("%w: ngram.top_k must be >= 0, got %d", internalerr.ErrInvalidConfig, c.NGram.TopK)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
