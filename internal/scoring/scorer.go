// Package scoring provides cross-encoder relevance scoring of
// (query, document) pairs. A cross-encoder jointly encodes the pair and is
// markedly more accurate than comparing independently-encoded vectors, at
// the cost of one model inference per pair.
package scoring

import "context"

// CrossScorer scores a query against a batch of documents in one call.
// The returned slice has the same length and order as documents.
// Implementations fail closed: a batch error yields no partial scores.
type CrossScorer interface {
	ScoreBatch(ctx context.Context, query string, documents []string) ([]float64, error)
	Close() error
}

// PairScorer scores a single (query, document) pair. Scorers that cannot
// batch natively implement this and are wrapped by PooledScorer to satisfy
// the CrossScorer contract with bounded concurrency.
type PairScorer interface {
	ScorePair(ctx context.Context, query, document string) (float64, error)
}
