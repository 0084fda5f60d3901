package models

// SearchRequest represents a search request with optional filters.
type SearchRequest struct {
	Query    string `json:"query"`
	Limit    int    `json:"limit,omitempty"`
	Category string `json:"category,omitempty"`
}

// Validate normalizes the request limit. An empty query is not an error here:
// the pipeline turns it into a NotFound decision with reason "empty_query".
func (r *SearchRequest) Validate() {
	if r.Limit <= 0 {
		r.Limit = 5
	}
	if r.Limit > 10 {
		r.Limit = 10
	}
}
