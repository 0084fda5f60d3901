//go:build cgo
// +build cgo

// ONNX cross-encoder (requires CGO and the onnxruntime shared library).
package scoring

import (
	"context"
	"fmt"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/mashriq/daleel/internal/embedding"
)

// ONNXCrossScorer runs a cross-encoder model over (query, document) pairs.
// The raw output is a single relevance logit; a sigmoid maps it into (0,1)
// so the configured probability thresholds apply directly.
type ONNXCrossScorer struct {
	session   *ort.AdvancedSession
	maxTokens int
	tokenizer embedding.Tokenizer
	// Pre-allocated tensors for Run(); pairs are scored one at a time under the mutex.
	inputIDsTensor      *ort.Tensor[int64]
	attentionMaskTensor *ort.Tensor[int64]
	tokenTypeIDsTensor  *ort.Tensor[int64]
	outputTensor        *ort.Tensor[float32]
	mu                  sync.Mutex
}

// NewONNXCrossScorer creates a cross-encoder scorer. When tokenizerPath is
// non-empty a HuggingFace tokenizer.json is loaded; otherwise the hash-based
// fallback is used.
func NewONNXCrossScorer(modelPath, tokenizerPath string, maxTokens int) (*ONNXCrossScorer, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	var tok embedding.Tokenizer
	if tokenizerPath != "" {
		hf, err := embedding.NewHFTokenizer(tokenizerPath)
		if err != nil {
			return nil, err
		}
		tok = hf
	} else {
		tok = &embedding.SimpleTokenizer{}
	}

	seed, err := tok.TokenizePair("", "", maxTokens)
	if err != nil {
		return nil, err
	}

	inputIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), seed.InputIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	attentionMaskTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), seed.AttentionMask)
	if err != nil {
		inputIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	tokenTypeIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), seed.TypeIDs)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	outputTensor, err := ort.NewTensor(ort.NewShape(1, 1), make([]float32, 1))
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"},
		[]ort.ArbitraryTensor{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor},
		[]ort.ArbitraryTensor{outputTensor},
		nil,
	)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXCrossScorer{
		session:             session,
		maxTokens:           maxTokens,
		tokenizer:           tok,
		inputIDsTensor:      inputIDsTensor,
		attentionMaskTensor: attentionMaskTensor,
		tokenTypeIDsTensor:  tokenTypeIDsTensor,
		outputTensor:        outputTensor,
	}, nil
}

// ScorePair scores a single (query, document) pair.
func (s *ONNXCrossScorer) ScorePair(ctx context.Context, query, document string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ids, err := s.tokenizer.TokenizePair(query, document, s.maxTokens)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.inputIDsTensor.GetData(), ids.InputIDs)
	copy(s.attentionMaskTensor.GetData(), ids.AttentionMask)
	copy(s.tokenTypeIDsTensor.GetData(), ids.TypeIDs)

	if err := s.session.Run(); err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}
	logit := float64(s.outputTensor.GetData()[0])
	return sigmoid(logit), nil
}

// ScoreBatch scores every document against query, order-preserving.
// The session holds pre-allocated single-pair tensors, so the batch runs as
// sequential inferences; wrap with PooledScorer for concurrency.
func (s *ONNXCrossScorer) ScoreBatch(ctx context.Context, query string, documents []string) ([]float64, error) {
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		score, err := s.ScorePair(ctx, query, doc)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

// Close destroys the session and tensors.
func (s *ONNXCrossScorer) Close() error {
	var err error
	if s.session != nil {
		err = s.session.Destroy()
		s.session = nil
	}
	if s.inputIDsTensor != nil {
		_ = s.inputIDsTensor.Destroy()
		s.inputIDsTensor = nil
	}
	if s.attentionMaskTensor != nil {
		_ = s.attentionMaskTensor.Destroy()
		s.attentionMaskTensor = nil
	}
	if s.tokenTypeIDsTensor != nil {
		_ = s.tokenTypeIDsTensor.Destroy()
		s.tokenTypeIDsTensor = nil
	}
	if s.outputTensor != nil {
		_ = s.outputTensor.Destroy()
		s.outputTensor = nil
	}
	return err
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
