package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/store"
)

// User-facing Arabic messages attached to responses.
const (
	msgNoMatch       = "لم أجد فتوى مطابقة لسؤالك"
	msgLowConfidence = "لم أجد فتوى تطابق سؤالك بدرجة كافية"
	msgEmptyQuery    = "الرجاء إدخال سؤال للبحث"
	msgWarning       = "تنبيه: الفتوى التالية قد تكون ذات صلة بسؤالك، لكن يُنصح بإعادة صياغة السؤال للحصول على نتيجة أفضل."
)

// Assembler hydrates a Decision's record identifiers from the store and
// shapes the response. Record text passes through verbatim.
type Assembler struct {
	store   store.Store
	timeout time.Duration
}

// NewAssembler creates an assembler over the given store. A zero timeout
// disables the per-call deadline.
func NewAssembler(st store.Store, timeout time.Duration) *Assembler {
	return &Assembler{store: st, timeout: timeout}
}

// Assemble builds the response for a decision. NotFound decisions pass
// reason and suggestions through untouched. For accepted decisions the
// primary (and auxiliary) records are fetched by ID; a store failure, or a
// missing primary record the verifier already validated, is an
// infrastructure error wrapping ErrHydrationFailed, never a NotFound.
// Auxiliary records missing from the store are dropped from the list.
func (a *Assembler) Assemble(ctx context.Context, decision *models.Decision, query string) (*models.SearchResponse, error) {
	resp := &models.SearchResponse{
		Query:        query,
		OtherResults: []models.FatwaResult{},
	}

	if !decision.Found() {
		resp.Found = false
		resp.Reason = decision.Reason
		resp.Message = messageForReason(decision.Reason)
		resp.Suggestions = decision.Suggestions
		return resp, nil
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	ids := make([]string, 0, 1+len(decision.Auxiliary))
	ids = append(ids, decision.Primary.RecordID)
	for _, rc := range decision.Auxiliary {
		ids = append(ids, rc.RecordID)
	}

	fatwas, err := a.store.GetFatwasByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHydrationFailed, err)
	}
	byID := make(map[string]*models.Fatwa, len(fatwas))
	for _, f := range fatwas {
		byID[f.ID] = f
	}

	primary, ok := byID[decision.Primary.RecordID]
	if !ok {
		return nil, fmt.Errorf("%w: record %s not in store", ErrHydrationFailed, decision.Primary.RecordID)
	}

	resp.Found = true
	resp.Confidence = decision.Confidence
	resp.Fatwa = resultFromFatwa(primary, decision.Primary.CrossScore)
	for _, rc := range decision.Auxiliary {
		f, ok := byID[rc.RecordID]
		if !ok {
			continue
		}
		resp.OtherResults = append(resp.OtherResults, *resultFromFatwa(f, rc.CrossScore))
	}
	if decision.Outcome == models.OutcomeAcceptedWithWarning {
		resp.Message = msgWarning
	}
	return resp, nil
}

// resultFromFatwa copies record fields verbatim; provenance is never altered.
func resultFromFatwa(f *models.Fatwa, score float64) *models.FatwaResult {
	shaykh := f.Shaykh
	if shaykh == "" {
		shaykh = "غير محدد"
	}
	series := f.Series
	if series == "" {
		series = "غير محدد"
	}
	return &models.FatwaResult{
		ID:              f.ID,
		Question:        f.Question,
		Answer:          f.Answer,
		Shaykh:          shaykh,
		Series:          series,
		Link:            f.Link,
		Category:        f.Category,
		ConfidenceScore: score,
	}
}

func messageForReason(reason string) string {
	switch reason {
	case models.ReasonEmptyQuery:
		return msgEmptyQuery
	case models.ReasonLowConfidence:
		return msgLowConfidence
	default:
		return msgNoMatch
	}
}
