package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/store"
)

// LoadJSON imports a corpus dump (a JSON array of fatwa records) into the
// store. Records without an ID get a fresh UUID; records without question or
// answer text are skipped. Returns the number of records imported.
func LoadJSON(ctx context.Context, st store.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read corpus file: %w", err)
	}

	var inputs []models.FatwaInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return 0, fmt.Errorf("parse corpus file: %w", err)
	}

	imported := 0
	for _, in := range inputs {
		if in.Question == "" || in.Answer == "" {
			continue
		}
		id := in.ID
		if id == "" {
			id = uuid.New().String()
		}
		fatwa := &models.Fatwa{
			ID:       id,
			Category: in.Category,
			Question: in.Question,
			Answer:   in.Answer,
			Link:     in.Link,
			Shaykh:   in.Shaykh,
			Series:   in.Series,
		}
		if err := st.PutFatwa(ctx, fatwa); err != nil {
			return imported, fmt.Errorf("store record %s: %w", id, err)
		}
		imported++
	}
	return imported, nil
}
