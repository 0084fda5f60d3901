package embedding

import (
	"context"
	"math"
	"sync/atomic"
)

// MockEmbedder is a deterministic embedder for tests. It returns a fixed-dimension
// unit vector derived from the text hash so that the same text always gets the
// same embedding. Calls records how many times the model was invoked, which
// lets tests assert the empty-query short-circuit.
type MockEmbedder struct {
	dimensions int
	calls      atomic.Int64
}

// NewMockEmbedder returns an embedder that produces deterministic embeddings of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// EmbedQuery embeds query-side text deterministically.
func (e *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(QueryPrefix + text)
}

// EmbedPassage embeds document-side text deterministically. Query and passage
// prefixes differ, so the two sides intentionally produce different vectors
// for identical text, matching the asymmetric-model contract.
func (e *MockEmbedder) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return e.embed(PassagePrefix + text)
}

// EmbedPassageBatch embeds each passage in order.
func (e *MockEmbedder) EmbedPassageBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.EmbedPassage(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

func (e *MockEmbedder) embed(text string) ([]float32, error) {
	e.calls.Add(1)
	h := hashString(text)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*(i+1)))*0.1 + 0.01)
	}
	// Normalize to unit length for cosine similarity
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range emb {
			emb[i] *= float32(norm)
		}
	}
	return emb, nil
}

// Calls returns how many embed calls were made.
func (e *MockEmbedder) Calls() int64 {
	return e.calls.Load()
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}
