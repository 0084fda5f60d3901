package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// PooledScorer adapts a PairScorer to the CrossScorer batch contract by
// scoring pairs concurrently on a bounded worker pool. Output order matches
// input order; the first error cancels the batch result.
type PooledScorer struct {
	scorer PairScorer
	pool   *ants.Pool
	closer func() error
}

// NewPooledScorer creates a pooled scorer with the given worker bound.
func NewPooledScorer(scorer PairScorer, workers int) (*PooledScorer, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring pool: %w", err)
	}
	p := &PooledScorer{scorer: scorer, pool: pool}
	if c, ok := scorer.(interface{ Close() error }); ok {
		p.closer = c.Close
	}
	return p, nil
}

// ScoreBatch scores every document against query concurrently.
func (p *PooledScorer) ScoreBatch(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	scores := make([]float64, len(documents))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, doc := range documents {
		i, doc := i, doc
		wg.Add(1)
		task := func() {
			defer wg.Done()
			s, err := p.scorer.ScorePair(ctx, query, doc)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			scores[i] = s
		}
		if err := p.pool.Submit(task); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit scoring task: %w", err)
			}
			mu.Unlock()
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return scores, nil
}

// Close releases the pool and the wrapped scorer.
func (p *PooledScorer) Close() error {
	p.pool.Release()
	if p.closer != nil {
		return p.closer()
	}
	return nil
}
