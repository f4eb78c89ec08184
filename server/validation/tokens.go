package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used for models tiktoken does not know, which covers
// every non-OpenAI provider.
const fallbackEncoding = "cl100k_base"

// Tokenizer counts the tokens in a text.
type Tokenizer interface {
	CountTokens(text string) int
}

type tiktokenWrapper struct {
	*tiktoken.Tiktoken
}

func (t *tiktokenWrapper) CountTokens(text string) int {
	return len(t.Encode(text, nil, nil))
}

// ApproxTokenizer estimates one token per four characters. It needs no
// vocabulary download.
type ApproxTokenizer struct{}

func (ApproxTokenizer) CountTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// TokenCounter measures prompt sizes against a context budget.
type TokenCounter struct {
	encoding Tokenizer
}

// NewTokenCounter returns a counter using the tiktoken encoding for model,
// or cl100k_base when the model is unknown. Loading an encoding may fetch
// its vocabulary over the network.
func NewTokenCounter(model string) (*TokenCounter, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
		}
	}
	return &TokenCounter{encoding: &tiktokenWrapper{encoding}}, nil
}

// NewTokenCounterWith wraps an existing Tokenizer.
func NewTokenCounterWith(t Tokenizer) *TokenCounter {
	return &TokenCounter{encoding: t}
}

// Count returns the number of tokens in text.
func (tc *TokenCounter) Count(text string) int {
	return tc.encoding.CountTokens(text)
}

// CountAll sums Count over texts.
func (tc *TokenCounter) CountAll(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += tc.Count(t)
	}
	return total
}

// Fits reports whether texts fit in maxTokens. A non-positive budget always
// fits.
func (tc *TokenCounter) Fits(maxTokens int, texts ...string) bool {
	if maxTokens <= 0 {
		return true
	}
	return tc.CountAll(texts...) <= maxTokens
}
