package scoring

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrMockFailure is returned by a MockScorer configured to fail.
var ErrMockFailure = errors.New("mock scorer failure")

// MockScorer is a deterministic scorer for tests. Scores come from the Fixed
// map keyed by document text; unknown documents get Default. When Fail is
// set every batch errors, exercising the fail-closed path.
type MockScorer struct {
	Fixed   map[string]float64
	Default float64
	Fail    bool
	calls   atomic.Int64
}

// ScoreBatch returns configured scores in document order.
func (m *MockScorer) ScoreBatch(ctx context.Context, query string, documents []string) ([]float64, error) {
	m.calls.Add(1)
	if m.Fail {
		return nil, ErrMockFailure
	}
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		if s, ok := m.Fixed[doc]; ok {
			scores[i] = s
		} else {
			scores[i] = m.Default
		}
	}
	return scores, nil
}

// Calls returns how many batches were scored.
func (m *MockScorer) Calls() int64 {
	return m.calls.Load()
}

// Close is a no-op for MockScorer.
func (m *MockScorer) Close() error {
	return nil
}
