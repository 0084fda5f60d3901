package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mashriq/daleel/internal/models"
)

func foundResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Found:      true,
		Confidence: 0.91,
		Fatwa: &models.FatwaResult{
			ID:              "f1",
			Question:        "ما حكم صيام المسافر؟",
			Answer:          "يجوز للمسافر الفطر.",
			Shaykh:          "فلان",
			Series:          "سلسلة",
			Link:            "https://example.com/f1",
			ConfidenceScore: 0.91,
		},
		OtherResults: []models.FatwaResult{
			{ID: "f2", Question: "سؤال اخر", Answer: "جواب", Shaykh: "فلان", Series: "سلسلة", ConfidenceScore: 0.72},
		},
		QueryTime: 42,
		Query:     "صيام المسافر",
	}
}

func TestWriteSearchResponse_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResponse(&buf, foundResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"f1", "ما حكم صيام المسافر؟", "0.9100", "42ms", "Other relevant fatwas", "f2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResponse_TextNotFound(t *testing.T) {
	resp := &models.SearchResponse{
		Found:       false,
		Reason:      models.ReasonLowConfidence,
		Message:     "لم أجد فتوى تطابق سؤالك بدرجة كافية",
		Suggestions: []string{"الصيام", "الزكاة"},
		QueryTime:   10,
	}
	var buf bytes.Buffer
	if err := WriteSearchResponse(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "low_confidence") {
		t.Errorf("missing reason:\n%s", out)
	}
	if !strings.Contains(out, "الصيام") || !strings.Contains(out, "الزكاة") {
		t.Errorf("missing suggestions:\n%s", out)
	}
}

func TestWriteSearchResponse_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResponse(&buf, foundResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if !decoded.Found || decoded.Fatwa.ID != "f1" {
		t.Errorf("roundtrip: got %+v", decoded)
	}
}
