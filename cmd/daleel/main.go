// Package main is the Daleel CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mashriq/daleel/internal/cli"
	"github.com/mashriq/daleel/internal/config"
	"github.com/mashriq/daleel/internal/embedding"
	"github.com/mashriq/daleel/internal/ingest"
	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/normalize"
	"github.com/mashriq/daleel/internal/pipeline"
	"github.com/mashriq/daleel/internal/scoring"
	"github.com/mashriq/daleel/internal/server"
	"github.com/mashriq/daleel/internal/store"
	"github.com/mashriq/daleel/internal/vector"
	"github.com/mashriq/daleel/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/daleel/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "ingest":
		runIngest()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("daleel version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (stage timings, decisions)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(
		components.Pipeline,
		components.Store,
		components.Index,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Storage.VectorIndexPath != "" && components.Index != nil {
		if err := components.Index.Save(cfg.Storage.VectorIndexPath); err != nil {
			logger.Warn("vector index save failed", zap.String("path", cfg.Storage.VectorIndexPath), zap.Error(err))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: daleel search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  daleel search ما حكم صيام المسافر
  daleel search "ما حكم صيام المسافر"       # same as above
  daleel search --category الصيام --limit 5 حكم الصيام
  daleel search --output json "your query"    # structured JSON for other apps
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 5, "number of results (primary + auxiliary)")
	category := fs.String("category", "", "restrict retrieval to one category")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	req := &models.SearchRequest{
		Query:    queryStr,
		Limit:    *limit,
		Category: *category,
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (avoids SQLite lock conflict).
		response, err := searchViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResponse(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Pipeline.Search(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResponse(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, req *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	corpusPath := fs.String("corpus", "", "JSON corpus file to import into the store before indexing")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	if *corpusPath != "" {
		n, err := ingest.LoadJSON(ctx, components.Store, *corpusPath)
		if err != nil {
			fmt.Printf("Corpus import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d record(s) from %s\n", n, *corpusPath)
	}

	ingester := ingest.NewIngester(
		components.Store,
		components.Embedder,
		components.Index,
		ingest.WithLogger(logger),
	)
	total, err := ingester.BuildIndex(ctx)
	if err != nil {
		fmt.Printf("Index build failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.VectorIndexPath != "" {
		if err := components.Index.Save(cfg.Storage.VectorIndexPath); err != nil {
			fmt.Printf("Index save failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Indexed %d record(s)\n", total)
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Fatwas          int64                  `json:"fatwas"`
	VectorIndexSize int                    `json:"vector_index_size"`
	Config          map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		count, err := components.Store.CountFatwas(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count fatwas failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Fatwas:          count,
			VectorIndexSize: components.Index.Size(),
			Config: map[string]interface{}{
				"embedding_dimensions": cfg.Embedding.Dimensions,
				"retrieve_limit":       cfg.Search.RetrieveLimit,
				"high_threshold":       cfg.Search.HighThreshold,
				"low_threshold":        cfg.Search.LowThreshold,
				"database_path":        cfg.Storage.DatabasePath,
				"vector_index_path":    cfg.Storage.VectorIndexPath,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("fatwas:             %d   # count of stored records\n", status.Fatwas)
		fmt.Printf("vector_index_size:  %d   # count of vectors in semantic index\n", status.VectorIndexSize)
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{
				"embedding_dimensions", "retrieve_limit",
				"high_threshold", "low_threshold",
				"database_path", "vector_index_path",
			} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-20s%v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store    store.Store
	Embedder embedding.Embedder
	Scorer   scoring.CrossScorer
	Index    vector.Index
	Pipeline *pipeline.Pipeline
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Scorer != nil {
		_ = c.Scorer.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.TokenizerPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		if logger != nil {
			logger.Warn("embedding model unavailable, using mock embedder",
				zap.String("model_path", cfg.Embedding.ModelPath),
				zap.Error(err))
		}
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	var scorer scoring.CrossScorer
	onnxScorer, err := scoring.NewONNXCrossScorer(
		cfg.Scorer.ModelPath,
		cfg.Scorer.TokenizerPath,
		cfg.Scorer.MaxTokens,
	)
	if err != nil {
		if logger != nil {
			logger.Warn("cross-encoder model unavailable, using mock scorer",
				zap.String("model_path", cfg.Scorer.ModelPath),
				zap.Error(err))
		}
		scorer = &scoring.MockScorer{Default: 0.5}
	} else if cfg.Scorer.Workers > 1 {
		pooled, poolErr := scoring.NewPooledScorer(onnxScorer, cfg.Scorer.Workers)
		if poolErr != nil {
			return nil, fmt.Errorf("failed to initialize scorer pool: %w", poolErr)
		}
		scorer = pooled
	} else {
		scorer = onnxScorer
	}

	index, err := vector.NewMemoryIndex(cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	if cfg.Storage.VectorIndexPath != "" {
		if loadErr := index.Load(cfg.Storage.VectorIndexPath); loadErr != nil && logger != nil {
			logger.Warn("vector index load skipped (run ingest)",
				zap.String("path", cfg.Storage.VectorIndexPath), zap.Error(loadErr))
		}
	}
	if logger != nil {
		logger.Info("vector index initialized", zap.Int("size", index.Size()))
	}

	normalizer := normalize.New(cfg.Dialect)

	pipeOpts := []pipeline.Option{}
	if debug && logger != nil {
		pipeOpts = append(pipeOpts, pipeline.WithLogger(logger))
	}
	p := pipeline.New(normalizer, embedder, index, scorer, st, &cfg.Search, pipeOpts...)

	return &Components{
		Store:    st,
		Embedder: embedder,
		Scorer:   scorer,
		Index:    index,
		Pipeline: p,
	}, nil
}

func printUsage() {
	fmt.Println(`daleel - Arabic fatwa semantic search

Usage:
  daleel server [flags]           Start the HTTP server
  daleel search [flags] <query>   Search fatwas
  daleel ingest [flags]           Import a corpus and (re)build the vector index
  daleel status [flags]           Show corpus/index status
  daleel version                  Show version
  daleel help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/daleel/config.yaml)
  --debug            Enable debug logging (stage timings, decisions)

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to use direct storage when server is not running.
  --limit int        Number of results, primary plus auxiliary (default: 5, max: 10)
  --category string  Restrict retrieval to one category
  --output string    Output format: text or json (default: text)

Ingest Flags:
  --config string    Config file path
  --corpus string    JSON corpus file to import into the store before indexing

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Examples:
  daleel server
  daleel search ما حكم صيام المسافر في رمضان
  daleel search --output json "query"   # structured JSON for other apps
  daleel ingest --corpus fatwas.json
  daleel status
  daleel status --output json`)
}
