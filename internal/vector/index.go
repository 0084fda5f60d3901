// Package vector provides the approximate-nearest-neighbor index used for
// candidate retrieval.
package vector

import "context"

// Payload is the denormalized preview stored alongside each vector so the
// re-ranker can score candidates without a record-store round-trip.
type Payload struct {
	Category      string
	Shaykh        string
	Question      string
	AnswerPreview string
}

// Point is one indexed record: identifier, embedding, and preview payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// Hit is a single similarity-search result.
type Hit struct {
	ID      string
	Score   float64 // inner product; equals cosine similarity for normalized vectors
	Payload Payload
}

// Filter restricts a search to a subset of the index. Zero value means no filtering.
type Filter struct {
	Category string
}

// Index defines vector storage and similarity search. Search must return at
// most k hits ordered by descending score, with the filter applied before
// the limit cut so filtered searches still fill up to k results.
type Index interface {
	Add(ctx context.Context, points []Point) error
	Search(ctx context.Context, query []float32, k int, filter *Filter) ([]Hit, error)
	Remove(ctx context.Context, ids []string) error
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}
