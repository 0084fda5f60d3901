package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mashriq/daleel/internal/vector"
)

// stubIndex returns canned hits or a canned error.
type stubIndex struct {
	hits []vector.Hit
	err  error
}

func (s *stubIndex) Add(ctx context.Context, points []vector.Point) error { return nil }
func (s *stubIndex) Search(ctx context.Context, query []float32, k int, filter *vector.Filter) ([]vector.Hit, error) {
	if s.err != nil {
		return nil, s.err
	}
	if k > len(s.hits) {
		k = len(s.hits)
	}
	return s.hits[:k], nil
}
func (s *stubIndex) Remove(ctx context.Context, ids []string) error { return nil }
func (s *stubIndex) Save(path string) error                         { return nil }
func (s *stubIndex) Load(path string) error                         { return nil }
func (s *stubIndex) Size() int                                      { return len(s.hits) }
func (s *stubIndex) Close() error                                   { return nil }

func TestRetrieve_MapsHits(t *testing.T) {
	idx := &stubIndex{hits: []vector.Hit{
		{ID: "a", Score: 0.9, Payload: vector.Payload{Category: "الصيام", Question: "q1", AnswerPreview: "a1"}},
		{ID: "b", Score: 0.8, Payload: vector.Payload{Question: "q2"}},
	}}
	r := NewRetriever(idx, time.Second)

	got, err := r.Retrieve(context.Background(), []float32{1}, 20, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates", len(got))
	}
	if got[0].RecordID != "a" || got[0].Similarity != 0.9 || got[0].Category != "الصيام" {
		t.Errorf("candidate: got %+v", got[0])
	}
	if got[0].AnswerPreview != "a1" {
		t.Errorf("preview: got %q", got[0].AnswerPreview)
	}
}

func TestRetrieve_EmptyIsNotError(t *testing.T) {
	r := NewRetriever(&stubIndex{}, time.Second)
	got, err := r.Retrieve(context.Background(), []float32{1}, 20, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d", len(got))
	}
}

func TestRetrieve_DedupesKeepingFirst(t *testing.T) {
	idx := &stubIndex{hits: []vector.Hit{
		{ID: "a", Score: 0.9},
		{ID: "a", Score: 0.7},
		{ID: "b", Score: 0.6},
	}}
	r := NewRetriever(idx, time.Second)
	got, err := r.Retrieve(context.Background(), []float32{1}, 20, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates", len(got))
	}
	if got[0].RecordID != "a" || got[0].Similarity != 0.9 {
		t.Errorf("kept wrong duplicate: %+v", got[0])
	}
}

func TestRetrieve_IndexErrorWrapped(t *testing.T) {
	r := NewRetriever(&stubIndex{err: errors.New("connection refused")}, time.Second)
	_, err := r.Retrieve(context.Background(), []float32{1}, 20, "")
	if !errors.Is(err, ErrRetrievalUnavailable) {
		t.Errorf("got %v, want ErrRetrievalUnavailable", err)
	}
}

func TestRetrieve_InvalidLimit(t *testing.T) {
	r := NewRetriever(&stubIndex{}, time.Second)
	if _, err := r.Retrieve(context.Background(), []float32{1}, 0, ""); err == nil {
		t.Error("expected error for limit 0")
	}
}

func TestRetrieve_CategoryFilterPassedThrough(t *testing.T) {
	// Against a real index the filter must restrict results.
	idx, _ := vector.NewMemoryIndex(2)
	defer idx.Close()
	ctx := context.Background()
	_ = idx.Add(ctx, []vector.Point{
		{ID: "a", Vector: []float32{1, 0}, Payload: vector.Payload{Category: "الصيام"}},
		{ID: "b", Vector: []float32{0.9, 0.1}, Payload: vector.Payload{Category: "الزكاة"}},
	})
	r := NewRetriever(idx, time.Second)

	got, err := r.Retrieve(ctx, []float32{1, 0}, 20, "الزكاة")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].RecordID != "b" {
		t.Errorf("got %v", got)
	}
}
