package models

// Candidate is one approximate-index hit awaiting precise re-scoring.
// The preview fields are denormalized from the index payload so the
// re-ranker needs no store round-trip.
type Candidate struct {
	RecordID      string  `json:"record_id"`
	Similarity    float64 `json:"similarity"`
	Category      string  `json:"category"`
	Shaykh        string  `json:"shaykh"`
	Question      string  `json:"question"`
	AnswerPreview string  `json:"answer_preview"`
}

// PreviewText returns the document text the cross-scorer sees for this candidate.
func (c *Candidate) PreviewText() string {
	if c.AnswerPreview == "" {
		return c.Question
	}
	return c.Question + " " + c.AnswerPreview
}

// RankedCandidate pairs a candidate with its cross-encoder score.
type RankedCandidate struct {
	Candidate
	CrossScore float64 `json:"cross_score"`
}

// Outcome tags a Decision.
type Outcome string

const (
	// OutcomeAccepted means the top candidate cleared the high-confidence threshold.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeAcceptedWithWarning means the top candidate fell in the borderline band.
	OutcomeAcceptedWithWarning Outcome = "accepted_with_warning"
	// OutcomeNotFound means no candidate was trustworthy enough to return.
	OutcomeNotFound Outcome = "not_found"
)

// Reasons attached to NotFound decisions.
const (
	ReasonEmptyQuery    = "empty_query"
	ReasonNoCandidates  = "no_candidates"
	ReasonLowConfidence = "low_confidence"
)

// Decision is the terminal artifact of one pipeline invocation.
// Exactly one Decision is produced per query.
type Decision struct {
	Outcome     Outcome
	Primary     *RankedCandidate
	Auxiliary   []RankedCandidate
	Confidence  float64
	Reason      string
	Suggestions []string
}

// Found reports whether the decision carries a primary record.
func (d *Decision) Found() bool {
	return d.Outcome == OutcomeAccepted || d.Outcome == OutcomeAcceptedWithWarning
}
