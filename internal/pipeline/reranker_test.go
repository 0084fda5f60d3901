package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/scoring"
)

func TestRerank_SortsByCrossScore(t *testing.T) {
	scorer := &scoring.MockScorer{Fixed: map[string]float64{
		"q1 a1": 0.3,
		"q2 a2": 0.9,
		"q3 a3": 0.6,
	}}
	r := NewReranker(scorer, time.Second)

	candidates := []models.Candidate{
		{RecordID: "r1", Question: "q1", AnswerPreview: "a1", Similarity: 0.99},
		{RecordID: "r2", Question: "q2", AnswerPreview: "a2", Similarity: 0.50},
		{RecordID: "r3", Question: "q3", AnswerPreview: "a3", Similarity: 0.80},
	}
	ranked, err := r.Rerank(context.Background(), "query", candidates)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 3 {
		t.Fatalf("got %d", len(ranked))
	}
	// Retrieval similarity order is discarded; cross-score decides.
	wantIDs := []string{"r2", "r3", "r1"}
	for i, want := range wantIDs {
		if ranked[i].RecordID != want {
			t.Errorf("ranked[%d]: got %s, want %s", i, ranked[i].RecordID, want)
		}
	}
}

func TestRerank_TiebreakTotalOrder(t *testing.T) {
	scorer := &scoring.MockScorer{Default: 0.5}
	r := NewReranker(scorer, time.Second)

	candidates := []models.Candidate{
		{RecordID: "z", Question: "q", Similarity: 0.7},
		{RecordID: "a", Question: "q", Similarity: 0.7},
		{RecordID: "m", Question: "q", Similarity: 0.9},
	}
	ranked, err := r.Rerank(context.Background(), "query", candidates)
	if err != nil {
		t.Fatal(err)
	}
	// Equal cross-scores: higher similarity first, then ID ascending.
	wantIDs := []string{"m", "a", "z"}
	for i, want := range wantIDs {
		if ranked[i].RecordID != want {
			t.Errorf("ranked[%d]: got %s, want %s", i, ranked[i].RecordID, want)
		}
	}

	// Same input again must give the same order.
	again, _ := r.Rerank(context.Background(), "query", candidates)
	for i := range ranked {
		if again[i].RecordID != ranked[i].RecordID {
			t.Fatal("ordering not deterministic")
		}
	}
}

func TestRerank_IsPermutation(t *testing.T) {
	scorer := &scoring.MockScorer{Default: 0.5}
	r := NewReranker(scorer, time.Second)
	candidates := []models.Candidate{
		{RecordID: "a", Question: "q1"},
		{RecordID: "b", Question: "q2"},
		{RecordID: "c", Question: "q3"},
	}
	ranked, err := r.Rerank(context.Background(), "query", candidates)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, rc := range ranked {
		seen[rc.RecordID] = true
	}
	if len(seen) != len(candidates) {
		t.Errorf("not a permutation: %v", seen)
	}
}

func TestRerank_EmptyInput(t *testing.T) {
	scorer := &scoring.MockScorer{}
	r := NewReranker(scorer, time.Second)
	ranked, err := r.Rerank(context.Background(), "query", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ranked != nil {
		t.Errorf("got %v", ranked)
	}
	if scorer.Calls() != 0 {
		t.Errorf("scorer called for empty input: %d", scorer.Calls())
	}
}

func TestRerank_FailClosed(t *testing.T) {
	r := NewReranker(&scoring.MockScorer{Fail: true}, time.Second)
	candidates := []models.Candidate{{RecordID: "a", Question: "q", Similarity: 0.99}}
	_, err := r.Rerank(context.Background(), "query", candidates)
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Errorf("got %v, want ErrScoringUnavailable", err)
	}
}
