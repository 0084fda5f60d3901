package models

// FatwaResult is a hydrated record with provenance and its confidence score.
// Question and answer are copied verbatim from the store.
type FatwaResult struct {
	ID              string  `json:"id"`
	Question        string  `json:"question"`
	Answer          string  `json:"answer"`
	Shaykh          string  `json:"shaykh"`
	Series          string  `json:"series"`
	Link            string  `json:"link"`
	Category        string  `json:"category,omitempty"`
	ConfidenceScore float64 `json:"confidence_score,omitempty"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Found        bool          `json:"found"`
	Confidence   float64       `json:"confidence,omitempty"`
	Fatwa        *FatwaResult  `json:"fatwa,omitempty"`
	OtherResults []FatwaResult `json:"other_results"`
	// Message carries the user-facing warning for borderline confidence or
	// the explanation when nothing was found.
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	QueryTime   int64    `json:"query_time_ms"`
	Query       string   `json:"query"`
}
