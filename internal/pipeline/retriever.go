package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/vector"
)

// Retriever queries the approximate index for candidate records.
type Retriever struct {
	index   vector.Index
	timeout time.Duration
}

// NewRetriever creates a retriever over the given index. A zero timeout
// disables the per-call deadline.
func NewRetriever(index vector.Index, timeout time.Duration) *Retriever {
	return &Retriever{index: index, timeout: timeout}
}

// Retrieve returns up to limit candidates ordered by descending similarity.
// An empty result is not an error; infrastructure failures wrap
// ErrRetrievalUnavailable. Duplicate record IDs from the index are dropped,
// keeping the first (highest-scoring) occurrence.
func (r *Retriever) Retrieve(ctx context.Context, queryVec []float32, limit int, category string) ([]models.Candidate, error) {
	if limit < 1 {
		return nil, fmt.Errorf("retrieve limit must be >= 1, got %d", limit)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var filter *vector.Filter
	if category != "" {
		filter = &vector.Filter{Category: category}
	}

	hits, err := r.index.Search(ctx, queryVec, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, ctx.Err())
	}

	seen := make(map[string]bool, len(hits))
	candidates := make([]models.Candidate, 0, len(hits))
	for _, hit := range hits {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		candidates = append(candidates, models.Candidate{
			RecordID:      hit.ID,
			Similarity:    hit.Score,
			Category:      hit.Payload.Category,
			Shaykh:        hit.Payload.Shaykh,
			Question:      hit.Payload.Question,
			AnswerPreview: hit.Payload.AnswerPreview,
		})
	}
	return candidates, nil
}
