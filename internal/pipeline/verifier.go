package pipeline

import "github.com/mashriq/daleel/internal/models"

// Verifier applies the confidence policy to a re-ranked candidate list.
// It is stateless and purely functional: one Decision per call, no retries.
//
// Only the top candidate's cross-score decides the primary outcome:
//
//	score >= high        -> Accepted
//	low <= score < high  -> AcceptedWithWarning
//	score < low          -> NotFound (low_confidence)
//
// Low is both the warning band's floor and the rejection threshold; there is
// no separate dead zone between "low" and "medium".
type Verifier struct {
	high   float64
	low    float64
	maxAux int
}

// NewVerifier creates a verifier with the given thresholds and auxiliary cap.
func NewVerifier(high, low float64, maxAux int) *Verifier {
	return &Verifier{high: high, low: low, maxAux: maxAux}
}

// Verify turns a ranked list into a Decision. maxAux caps the auxiliary list
// for this call; values below zero or above the configured cap fall back to
// the configured cap.
//
// Auxiliary candidates are re-filtered with the low threshold as floor: the
// acceptance bar applies only to the primary slot, but auxiliary results
// below low are suppressed so irrelevant records never ride along.
func (v *Verifier) Verify(ranked []models.RankedCandidate, maxAux int) models.Decision {
	if maxAux < 0 || maxAux > v.maxAux {
		maxAux = v.maxAux
	}
	if len(ranked) == 0 {
		return models.Decision{
			Outcome:     models.OutcomeNotFound,
			Reason:      models.ReasonNoCandidates,
			Suggestions: []string{},
		}
	}

	top := ranked[0]
	if top.CrossScore < v.low {
		return models.Decision{
			Outcome:     models.OutcomeNotFound,
			Reason:      models.ReasonLowConfidence,
			Suggestions: categorySuggestions(ranked),
		}
	}

	outcome := models.OutcomeAcceptedWithWarning
	if top.CrossScore >= v.high {
		outcome = models.OutcomeAccepted
	}

	aux := make([]models.RankedCandidate, 0, maxAux)
	for _, rc := range ranked[1:] {
		if len(aux) >= maxAux {
			break
		}
		if rc.CrossScore < v.low {
			continue
		}
		aux = append(aux, rc)
	}

	primary := top
	return models.Decision{
		Outcome:    outcome,
		Primary:    &primary,
		Auxiliary:  aux,
		Confidence: top.CrossScore,
	}
}

// categorySuggestions collects distinct categories from the ranked list, in
// rank order, as hints for reformulating a rejected query.
func categorySuggestions(ranked []models.RankedCandidate) []string {
	const maxSuggestions = 3
	seen := make(map[string]bool)
	out := []string{}
	for _, rc := range ranked {
		cat := rc.Category
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
