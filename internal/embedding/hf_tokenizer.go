package embedding

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// HFTokenizer wraps a HuggingFace tokenizer.json (wordpiece/unigram) so real
// model vocabularies are used instead of hash-based IDs.
type HFTokenizer struct {
	tk *tokenizer.Tokenizer
}

// NewHFTokenizer loads a tokenizer.json file.
func NewHFTokenizer(path string) (*HFTokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer %s: %w", path, err)
	}
	return &HFTokenizer{tk: tk}, nil
}

// Tokenize encodes a single sequence with special tokens, truncated and
// padded to maxTokens.
func (t *HFTokenizer) Tokenize(text string, maxTokens int) (*TokenIDs, error) {
	en, err := t.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize failed: %w", err)
	}
	return padEncoding(en, maxTokens), nil
}

// TokenizePair encodes a (query, document) pair with special tokens,
// truncated and padded to maxTokens.
func (t *HFTokenizer) TokenizePair(query, document string, maxTokens int) (*TokenIDs, error) {
	en, err := t.tk.EncodePair(query, document, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize pair failed: %w", err)
	}
	return padEncoding(en, maxTokens), nil
}

func padEncoding(en *tokenizer.Encoding, maxTokens int) *TokenIDs {
	if maxTokens <= 0 {
		maxTokens = len(en.Ids)
	}
	ids := newTokenIDs(maxTokens)
	n := len(en.Ids)
	if n > maxTokens {
		n = maxTokens
	}
	for i := 0; i < n; i++ {
		ids.InputIDs[i] = int64(en.Ids[i])
		ids.AttentionMask[i] = int64(en.AttentionMask[i])
		ids.TypeIDs[i] = int64(en.TypeIds[i])
	}
	return ids
}
