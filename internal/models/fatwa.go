// Package models defines core data structures for fatwa records, queries, and decisions.
package models

import "time"

// Fatwa is a stored fatwa record with provenance. The pipeline treats it as
// read-only: question and answer text are always returned verbatim.
type Fatwa struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Link      string    `json:"link"`
	Shaykh    string    `json:"shaykh"`
	Series    string    `json:"series"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FatwaInput is the input for importing a fatwa record into the corpus.
type FatwaInput struct {
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Link     string `json:"link,omitempty"`
	Shaykh   string `json:"shaykh,omitempty"`
	Series   string `json:"series,omitempty"`
}
