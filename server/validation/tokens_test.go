package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// wordTokenizer counts whitespace-separated words.
type wordTokenizer struct{}

func (wordTokenizer) CountTokens(text string) int {
	return len(strings.Fields(text))
}

func TestTokenCounter(t *testing.T) {
	tc := NewTokenCounterWith(wordTokenizer{})

	assert.Equal(t, 3, tc.Count("wach rak khoya"))
	assert.Equal(t, 5, tc.CountAll("wach rak", "labas hamdoullah", "salam"))

	tests := []struct {
		name   string
		budget int
		texts  []string
		want   bool
	}{
		{"within budget", 5, []string{"a b", "c d e"}, true},
		{"over budget", 4, []string{"a b", "c d e"}, false},
		{"no budget", 0, []string{"a b c d e f g"}, true},
		{"negative budget", -1, []string{"a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tc.Fits(tt.budget, tt.texts...))
		})
	}
}

func TestApproxTokenizer(t *testing.T) {
	var a ApproxTokenizer
	assert.Equal(t, 0, a.CountTokens(""))
	assert.Equal(t, 1, a.CountTokens("abc"))
	assert.Equal(t, 2, a.CountTokens("abcde"))
	// Runes, not bytes
	assert.Equal(t, 1, a.CountTokens("مرح"))
}
