//go:build !cgo
// +build !cgo

package scoring

import (
	"context"
	"errors"
)

var errONNXNoCGO = errors.New("ONNX cross-scorer requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXCrossScorer stub type when built without CGO (see onnx.go for real implementation).
type ONNXCrossScorer struct{}

// NewONNXCrossScorer returns an error when built without CGO (ONNX not available).
func NewONNXCrossScorer(_, _ string, _ int) (*ONNXCrossScorer, error) {
	return nil, errONNXNoCGO
}

func (s *ONNXCrossScorer) ScorePair(_ context.Context, _, _ string) (float64, error) {
	return 0, errONNXNoCGO
}

func (s *ONNXCrossScorer) ScoreBatch(_ context.Context, _ string, _ []string) ([]float64, error) {
	return nil, errONNXNoCGO
}

func (s *ONNXCrossScorer) Close() error { return nil }
