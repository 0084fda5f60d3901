package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/scoring"
)

// Reranker re-orders candidates by cross-encoder score. All candidates for a
// query go to the scorer as one batch; this is the dominant cost of the
// pipeline and the batch call is the latency lever.
type Reranker struct {
	scorer  scoring.CrossScorer
	timeout time.Duration
}

// NewReranker creates a reranker over the given scorer. A zero timeout
// disables the per-call deadline.
func NewReranker(scorer scoring.CrossScorer, timeout time.Duration) *Reranker {
	return &Reranker{scorer: scorer, timeout: timeout}
}

// Rerank scores every candidate against the query and returns them sorted by
// cross-score descending, with ties broken by similarity descending then
// record ID ascending, a total order, so identical inputs always produce
// identical output. The result is a permutation of the input. A scorer
// failure fails the whole call (wrapping ErrScoringUnavailable); falling
// back to unranked order would let retrieval similarity masquerade as a
// verified confidence.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []models.Candidate) ([]models.RankedCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	documents := make([]string, len(candidates))
	for i := range candidates {
		documents[i] = candidates[i].PreviewText()
	}

	scores, err := r.scorer.ScoreBatch(ctx, query, documents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("%w: scorer returned %d scores for %d documents", ErrScoringUnavailable, len(scores), len(candidates))
	}

	ranked := make([]models.RankedCandidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = models.RankedCandidate{Candidate: c, CrossScore: scores[i]}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].CrossScore != ranked[j].CrossScore {
			return ranked[i].CrossScore > ranked[j].CrossScore
		}
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].RecordID < ranked[j].RecordID
	})
	return ranked, nil
}
