//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

var errONNXNoCGO = errors.New("ONNX embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXEmbedder stub type when built without CGO (see onnx.go for real implementation).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO (ONNX not available).
func NewONNXEmbedder(_, _ string, _, _, _ int) (*ONNXEmbedder, error) {
	return nil, errONNXNoCGO
}

func (e *ONNXEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	return nil, errONNXNoCGO
}

func (e *ONNXEmbedder) EmbedPassage(_ context.Context, _ string) ([]float32, error) {
	return nil, errONNXNoCGO
}

func (e *ONNXEmbedder) EmbedPassageBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errONNXNoCGO
}

func (e *ONNXEmbedder) Dimensions() int { return 0 }

func (e *ONNXEmbedder) Close() error { return nil }
