// Package config provides configuration loading and structs for the Daleel server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding ModelConfig     `yaml:"embedding"`
	Scorer    ScorerConfig    `yaml:"scorer"`
	Search    SearchConfig    `yaml:"search"`
	// Dialect maps dialectal tokens to their standard-Arabic equivalents,
	// applied whole-word by the normalizer. When empty the built-in table
	// is used; setting it here replaces the table without code changes.
	Dialect map[string]string `yaml:"dialect"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the record database and the vector index.
type StorageConfig struct {
	DatabasePath    string `yaml:"database_path"`
	VectorIndexPath string `yaml:"vector_index_path"`
}

// ModelConfig holds ONNX embedder settings.
type ModelConfig struct {
	ModelPath     string `yaml:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
	Dimensions    int    `yaml:"dimensions"`
	MaxTokens     int    `yaml:"max_tokens"`
	CacheSize     int    `yaml:"cache_size"`
}

// ScorerConfig holds ONNX cross-encoder settings.
type ScorerConfig struct {
	ModelPath     string `yaml:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
	MaxTokens     int    `yaml:"max_tokens"`
	// Workers bounds concurrent per-pair scoring when the scorer cannot batch.
	Workers int `yaml:"workers"`
}

// SearchConfig holds pipeline limits, confidence thresholds, and stage timeouts.
type SearchConfig struct {
	RetrieveLimit int `yaml:"retrieve_limit"`
	MaxAuxResults int `yaml:"max_aux_results"`
	// HighThreshold and LowThreshold bound the confidence bands:
	// score >= high is accepted, [low, high) is accepted with a warning,
	// below low is not found. Low doubles as the medium band's floor;
	// there is no separate dead zone.
	HighThreshold   float64  `yaml:"high_threshold"`
	LowThreshold    float64  `yaml:"low_threshold"`
	RetrieveTimeout Duration `yaml:"retrieve_timeout"`
	ScoreTimeout    Duration `yaml:"score_timeout"`
	HydrateTimeout  Duration `yaml:"hydrate_timeout"`
}

// Duration wraps time.Duration so YAML values like "5s" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a duration string such as "500ms" or "30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.VectorIndexPath = expandPath(cfg.Storage.VectorIndexPath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	cfg.Embedding.TokenizerPath = expandPath(cfg.Embedding.TokenizerPath, configDir)
	cfg.Scorer.ModelPath = expandPath(cfg.Scorer.ModelPath, configDir)
	cfg.Scorer.TokenizerPath = expandPath(cfg.Scorer.TokenizerPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
