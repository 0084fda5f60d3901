// Package ingest builds the vector index from the record store and imports
// corpus dumps. It runs as a one-time job, not on the query path.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mashriq/daleel/internal/embedding"
	"github.com/mashriq/daleel/internal/store"
	"github.com/mashriq/daleel/internal/vector"
	"github.com/mashriq/daleel/pkg/utils"
)

// answerPreviewRunes bounds the denormalized answer text stored in the index
// payload; the full answer lives only in the record store.
const answerPreviewRunes = 500

// storeBatchSize is how many records are read and embedded per batch.
const storeBatchSize = 100

// Ingester embeds corpus records and fills the vector index.
type Ingester struct {
	store          store.Store
	embedder       embedding.Embedder
	index          vector.Index
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *zap.Logger
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithLogger sets a logger for progress output.
func WithLogger(l *zap.Logger) IngesterOption {
	return func(ing *Ingester) { ing.logger = l }
}

// WithRetry overrides the embedding retry policy (default 3 attempts, 1s base delay).
func WithRetry(maxRetries int, baseDelay time.Duration) IngesterOption {
	return func(ing *Ingester) {
		ing.maxRetries = maxRetries
		ing.retryBaseDelay = baseDelay
	}
}

// NewIngester creates an ingester with the given dependencies.
func NewIngester(st store.Store, embedder embedding.Embedder, index vector.Index, opts ...IngesterOption) *Ingester {
	ing := &Ingester{
		store:          st,
		embedder:       embedder,
		index:          index,
		maxRetries:     3,
		retryBaseDelay: time.Second,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// BuildIndex embeds every stored record ("question answer" document text,
// passage-side encoding) and inserts it into the vector index with its
// preview payload. Returns the number of records indexed.
func (ing *Ingester) BuildIndex(ctx context.Context) (int, error) {
	total := 0
	for offset := 0; ; offset += storeBatchSize {
		fatwas, err := ing.store.ListFatwas(ctx, offset, storeBatchSize)
		if err != nil {
			return total, fmt.Errorf("list records: %w", err)
		}
		if len(fatwas) == 0 {
			break
		}

		texts := make([]string, len(fatwas))
		for i, f := range fatwas {
			texts[i] = f.Question + " " + f.Answer
		}

		var embeddings [][]float32
		err = RetryWithBackoff(ctx, func() error {
			var embErr error
			embeddings, embErr = ing.embedder.EmbedPassageBatch(ctx, texts)
			return embErr
		}, ing.maxRetries, ing.retryBaseDelay)
		if err != nil {
			return total, fmt.Errorf("embed batch at offset %d: %w", offset, err)
		}
		if len(embeddings) != len(fatwas) {
			return total, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(fatwas), len(embeddings))
		}

		points := make([]vector.Point, len(fatwas))
		for i, f := range fatwas {
			points[i] = vector.Point{
				ID:     f.ID,
				Vector: embeddings[i],
				Payload: vector.Payload{
					Category:      f.Category,
					Shaykh:        f.Shaykh,
					Question:      f.Question,
					AnswerPreview: utils.FirstRunes(f.Answer, answerPreviewRunes),
				},
			}
		}
		if err := ing.index.Add(ctx, points); err != nil {
			return total, fmt.Errorf("index batch at offset %d: %w", offset, err)
		}

		total += len(fatwas)
		if ing.logger != nil {
			ing.logger.Info("indexed batch", zap.Int("offset", offset), zap.Int("total", total))
		}
		if len(fatwas) < storeBatchSize {
			break
		}
	}
	return total, nil
}
