package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mashriq/daleel/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fatwas.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStore_PutGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	f := &models.Fatwa{
		ID:       "f1",
		Category: "الصيام",
		Question: "ما حكم صيام المسافر؟",
		Answer:   "يجوز للمسافر الفطر في رمضان.",
		Shaykh:   "فلان",
		Series:   "سلسلة",
		Link:     "https://example.com/f1",
	}
	if err := st.PutFatwa(ctx, f); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetFatwa(ctx, "f1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != f.Question || got.Answer != f.Answer {
		t.Errorf("text not verbatim: got %+v", got)
	}
	if got.Category != "الصيام" || got.Shaykh != "فلان" {
		t.Errorf("metadata: got %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	st := newTestStore(t)
	_, err := st.GetFatwa(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_ = st.PutFatwa(ctx, &models.Fatwa{ID: "f1", Question: "q", Answer: "old"})
	_ = st.PutFatwa(ctx, &models.Fatwa{ID: "f1", Question: "q", Answer: "new"})
	got, err := st.GetFatwa(ctx, "f1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Answer != "new" {
		t.Errorf("answer: got %q", got.Answer)
	}
	count, _ := st.CountFatwas(ctx)
	if count != 1 {
		t.Errorf("count: got %d", count)
	}
}

func TestSQLiteStore_GetByIDsPreservesOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_ = st.PutFatwa(ctx, &models.Fatwa{ID: id, Question: "q-" + id, Answer: "a-" + id})
	}

	got, err := st.GetFatwasByIDs(ctx, []string{"c", "a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records", len(got))
	}
	for i, want := range []string{"c", "a", "b"} {
		if got[i].ID != want {
			t.Errorf("order[%d]: got %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestSQLiteStore_GetByIDsSkipsMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_ = st.PutFatwa(ctx, &models.Fatwa{ID: "a", Question: "q", Answer: "a"})

	got, err := st.GetFatwasByIDs(ctx, []string{"missing", "a", "also-missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("got %v", got)
	}
}

func TestSQLiteStore_GetByIDsEmpty(t *testing.T) {
	st := newTestStore(t)
	got, err := st.GetFatwasByIDs(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("got %v", got)
	}
}

func TestSQLiteStore_ListAndCount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_ = st.PutFatwa(ctx, &models.Fatwa{ID: id, Question: "q", Answer: "a"})
	}

	count, err := st.CountFatwas(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("count: got %d", count)
	}

	page, err := st.ListFatwas(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].ID != "c" || page[1].ID != "d" {
		t.Errorf("page: got %v", page)
	}

	empty, err := st.ListFatwas(ctx, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("past end: got %d", len(empty))
	}
}
