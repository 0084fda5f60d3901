package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.json")
	content := `[
		{"id": "f1", "category": "الصيام", "question": "سؤال اول", "answer": "جواب اول", "shaykh": "فلان"},
		{"question": "سؤال بلا معرف", "answer": "جواب"},
		{"question": "", "answer": "بلا سؤال"},
		{"id": "f3", "question": "سؤال بلا جواب", "answer": ""}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	st := newMemStore()
	n, err := LoadJSON(context.Background(), st, path)
	if err != nil {
		t.Fatal(err)
	}
	// Two valid records; the incomplete ones are skipped.
	if n != 2 {
		t.Errorf("imported: got %d", n)
	}

	f, err := st.GetFatwa(context.Background(), "f1")
	if err != nil {
		t.Fatal(err)
	}
	if f.Question != "سؤال اول" || f.Shaykh != "فلان" {
		t.Errorf("record: got %+v", f)
	}

	// The record without an ID got a generated one.
	count, _ := st.CountFatwas(context.Background())
	if count != 2 {
		t.Errorf("count: got %d", count)
	}
}

func TestLoadJSON_BadFile(t *testing.T) {
	st := newMemStore()
	if _, err := LoadJSON(context.Background(), st, "/nonexistent.json"); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(path, []byte("{not an array"), 0644)
	if _, err := LoadJSON(context.Background(), st, path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
