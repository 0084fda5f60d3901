// Package embedding provides text embedding via ONNX and caching.
//
// The e5 model family encodes asymmetrically: query-side text must carry the
// "query: " prefix and document-side text the "passage: " prefix. Callers use
// EmbedQuery / EmbedPassage and never add prefixes themselves.
package embedding

import "context"

// Textual prefixes for asymmetric e5-style encoding.
const (
	QueryPrefix   = "query: "
	PassagePrefix = "passage: "
)

// Embedder produces L2-normalized vector embeddings for text.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedQuery embeds query-side text (adds the query prefix).
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedPassage embeds document-side text (adds the passage prefix).
	EmbedPassage(ctx context.Context, text string) ([]float32, error)
	// EmbedPassageBatch embeds document-side texts, order-preserving.
	EmbedPassageBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
