package models

import "testing"

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero gets default", 0, 5},
		{"negative gets default", -3, 5},
		{"in range kept", 7, 7},
		{"above max clamped", 25, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SearchRequest{Query: "q", Limit: tt.limit}
			r.Validate()
			if r.Limit != tt.want {
				t.Errorf("limit: got %d, want %d", r.Limit, tt.want)
			}
		})
	}
}

func TestSearchRequestValidate_EmptyQueryAllowed(t *testing.T) {
	r := SearchRequest{}
	r.Validate()
	if r.Query != "" {
		t.Errorf("query mutated: got %q", r.Query)
	}
}
