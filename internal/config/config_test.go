package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: ./data/fatwas.db
search:
  retrieve_limit: 30
  high_threshold: 0.85
  retrieve_timeout: 2s
dialect:
  ايوه: نعم
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug: got false")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Search.RetrieveLimit != 30 {
		t.Errorf("retrieve_limit: got %d", cfg.Search.RetrieveLimit)
	}
	if cfg.Search.HighThreshold != 0.85 {
		t.Errorf("high_threshold: got %v", cfg.Search.HighThreshold)
	}
	if cfg.Search.RetrieveTimeout.Std() != 2*time.Second {
		t.Errorf("retrieve_timeout: got %v", cfg.Search.RetrieveTimeout.Std())
	}
	if cfg.Dialect["ايوه"] != "نعم" {
		t.Errorf("dialect: got %v", cfg.Dialect)
	}
	// ./-relative paths resolve against the config dir.
	want := filepath.Join(dir, "data/fatwas.db")
	if cfg.Storage.DatabasePath != want {
		t.Errorf("database_path: got %q, want %q", cfg.Storage.DatabasePath, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  score_timeout: banana\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Search.RetrieveLimit != 20 {
		t.Errorf("retrieve_limit: got %d", cfg.Search.RetrieveLimit)
	}
	if cfg.Search.MaxAuxResults != 4 {
		t.Errorf("max_aux_results: got %d", cfg.Search.MaxAuxResults)
	}
	if cfg.Search.HighThreshold != 0.80 || cfg.Search.LowThreshold != 0.60 {
		t.Errorf("thresholds: got %v/%v", cfg.Search.HighThreshold, cfg.Search.LowThreshold)
	}
	if cfg.Search.ScoreTimeout.Std() != 30*time.Second {
		t.Errorf("score_timeout: got %v", cfg.Search.ScoreTimeout.Std())
	}
	if cfg.Scorer.Workers != 4 {
		t.Errorf("workers: got %d", cfg.Scorer.Workers)
	}
}

func TestApplyDefaultsKeepsExplicit(t *testing.T) {
	cfg := &Config{}
	cfg.Search.HighThreshold = 0.9
	cfg.Server.Port = 3000
	ApplyDefaults(cfg)
	if cfg.Search.HighThreshold != 0.9 {
		t.Errorf("high_threshold overwritten: got %v", cfg.Search.HighThreshold)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port overwritten: got %d", cfg.Server.Port)
	}
}
