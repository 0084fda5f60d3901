package embedding

// TokenIDs holds padded model inputs for one encoded sequence (or pair).
type TokenIDs struct {
	InputIDs      []int64
	AttentionMask []int64
	TypeIDs       []int64
}

// Tokenizer produces token IDs for BERT-style models. TokenizePair encodes a
// (query, document) pair for cross-encoders; type IDs mark the second segment.
type Tokenizer interface {
	Tokenize(text string, maxTokens int) (*TokenIDs, error)
	TokenizePair(query, document string, maxTokens int) (*TokenIDs, error)
}

// SimpleTokenizer is a word-split tokenizer with hash-based token IDs
// (for tests or when no tokenizer.json is available).
type SimpleTokenizer struct{}

// Tokenize splits text into words and produces padded token IDs up to maxTokens.
func (t *SimpleTokenizer) Tokenize(text string, maxTokens int) (*TokenIDs, error) {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	ids := newTokenIDs(maxTokens)
	ids.InputIDs[0] = 101 // [CLS]
	ids.AttentionMask[0] = 1

	pos := 1
	for _, word := range splitWords(text) {
		if pos >= maxTokens-1 {
			break
		}
		ids.InputIDs[pos] = int64(hashString(word) % 30000)
		ids.AttentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		ids.InputIDs[pos] = 102 // [SEP]
		ids.AttentionMask[pos] = 1
	}
	return ids, nil
}

// TokenizePair encodes query and document as [CLS] query [SEP] document [SEP]
// with type IDs set to 1 for the document segment.
func (t *SimpleTokenizer) TokenizePair(query, document string, maxTokens int) (*TokenIDs, error) {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	ids := newTokenIDs(maxTokens)
	ids.InputIDs[0] = 101
	ids.AttentionMask[0] = 1

	pos := 1
	for _, word := range splitWords(query) {
		if pos >= maxTokens-2 {
			break
		}
		ids.InputIDs[pos] = int64(hashString(word) % 30000)
		ids.AttentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		ids.InputIDs[pos] = 102
		ids.AttentionMask[pos] = 1
		pos++
	}
	for _, word := range splitWords(document) {
		if pos >= maxTokens-1 {
			break
		}
		ids.InputIDs[pos] = int64(hashString(word) % 30000)
		ids.AttentionMask[pos] = 1
		ids.TypeIDs[pos] = 1
		pos++
	}
	if pos < maxTokens {
		ids.InputIDs[pos] = 102
		ids.AttentionMask[pos] = 1
		ids.TypeIDs[pos] = 1
	}
	return ids, nil
}

func newTokenIDs(maxTokens int) *TokenIDs {
	return &TokenIDs{
		InputIDs:      make([]int64, maxTokens),
		AttentionMask: make([]int64, maxTokens),
		TypeIDs:       make([]int64, maxTokens),
	}
}

func splitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

func hashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
