package pipeline

import "errors"

// Infrastructure failures are distinct from confidence-based NotFound
// decisions: callers check these with errors.Is and must never present
// them as "no match".
var (
	// ErrRetrievalUnavailable means the vector index could not be searched
	// (connectivity, timeout, dimension mismatch).
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrEmbeddingUnavailable means the embedding model failed or timed out.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrScoringUnavailable means cross-scoring failed for the batch.
	// Re-ranking fails closed; there is no fallback to unranked order.
	ErrScoringUnavailable = errors.New("scoring unavailable")
	// ErrHydrationFailed means a record the verifier already accepted could
	// not be fetched from the store.
	ErrHydrationFailed = errors.New("record hydration failed")
)
