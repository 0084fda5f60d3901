// Package cli provides CLI output utilities for Daleel.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResponse writes a search response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResponse(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResponseText(w, response)
		return nil
	}
}

func writeSearchResponseText(w io.Writer, response *models.SearchResponse) {
	if !response.Found {
		fmt.Fprintf(w, "\nNo match (%s) in %dms\n", response.Reason, response.QueryTime)
		if response.Message != "" {
			fmt.Fprintf(w, "%s\n", response.Message)
		}
		if len(response.Suggestions) > 0 {
			fmt.Fprintln(w, "\nRelated categories:")
			for _, s := range response.Suggestions {
				fmt.Fprintf(w, "  - %s\n", s)
			}
		}
		return
	}

	fmt.Fprintf(w, "\nMatch found in %dms (confidence %.4f)\n", response.QueryTime, response.Confidence)
	if response.Message != "" {
		fmt.Fprintf(w, "%s\n", response.Message)
	}
	writeOneResult(w, response.Fatwa)
	if len(response.OtherResults) > 0 {
		fmt.Fprintln(w, "--- Other relevant fatwas ---")
		for i := range response.OtherResults {
			writeOneResult(w, &response.OtherResults[i])
		}
	}
}

func writeOneResult(w io.Writer, result *models.FatwaResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "ID: %s | Score: %.4f\n", result.ID, result.ConfidenceScore)
	fmt.Fprintf(w, "Shaykh: %s | Series: %s\n", result.Shaykh, result.Series)
	if result.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", result.Category)
	}
	fmt.Fprintf(w, "\nQ: %s\n", result.Question)
	fmt.Fprintf(w, "A: %s\n", utils.TruncateRunes(result.Answer, 500))
	if result.Link != "" {
		fmt.Fprintf(w, "Link: %s\n", result.Link)
	}
	fmt.Fprintln(w)
}

// PrintSearchResponse prints a search response to stdout in text format.
func PrintSearchResponse(response *models.SearchResponse) {
	_ = WriteSearchResponse(os.Stdout, response, OutputText)
}
