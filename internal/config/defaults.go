package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/daleel/data/db/fatwas.db"
	}
	if cfg.Storage.VectorIndexPath == "" {
		cfg.Storage.VectorIndexPath = "/usr/local/var/daleel/data/indices/fatwas.idx"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/daleel/data/models/multilingual-e5-small.onnx"
	}
	if cfg.Embedding.TokenizerPath == "" {
		cfg.Embedding.TokenizerPath = "/usr/local/var/daleel/data/models/multilingual-e5-small.tokenizer.json"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Scorer.ModelPath == "" {
		cfg.Scorer.ModelPath = "/usr/local/var/daleel/data/models/ms-marco-minilm-l6.onnx"
	}
	if cfg.Scorer.TokenizerPath == "" {
		cfg.Scorer.TokenizerPath = "/usr/local/var/daleel/data/models/ms-marco-minilm-l6.tokenizer.json"
	}
	if cfg.Scorer.MaxTokens == 0 {
		cfg.Scorer.MaxTokens = 512
	}
	if cfg.Scorer.Workers == 0 {
		cfg.Scorer.Workers = 4
	}
	if cfg.Search.RetrieveLimit == 0 {
		cfg.Search.RetrieveLimit = 20
	}
	if cfg.Search.MaxAuxResults == 0 {
		cfg.Search.MaxAuxResults = 4
	}
	if cfg.Search.HighThreshold == 0 {
		cfg.Search.HighThreshold = 0.80
	}
	if cfg.Search.LowThreshold == 0 {
		cfg.Search.LowThreshold = 0.60
	}
	if cfg.Search.RetrieveTimeout == 0 {
		cfg.Search.RetrieveTimeout = Duration(5 * time.Second)
	}
	if cfg.Search.ScoreTimeout == 0 {
		cfg.Search.ScoreTimeout = Duration(30 * time.Second)
	}
	if cfg.Search.HydrateTimeout == 0 {
		cfg.Search.HydrateTimeout = Duration(5 * time.Second)
	}
}
