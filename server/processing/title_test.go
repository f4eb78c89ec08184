package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		gen     *generatorFunc
		message string
		want    string
	}{
		{
			name:    "llm title with quotes stripped",
			gen:     reply(`  "Restaurant Recommendations"  `),
			message: "wach kayen restaurants mlah f Oran?",
			want:    "Restaurant Recommendations",
		},
		{
			name:    "too long falls back to message prefix",
			gen:     reply("A very long title that goes on and on and on"),
			message: "wach kayen restaurants mlah f Oran?",
			want:    "wach kayen restauran...",
		},
		{
			name:    "llm failure falls back",
			gen:     failing(errors.New("timeout")),
			message: "wach kayen restaurants mlah f Oran?",
			want:    "wach kayen restauran...",
		},
		{
			name:    "short message kept whole",
			gen:     failing(errors.New("timeout")),
			message: "salam khoya",
			want:    "salam khoya",
		},
		{
			name:    "empty llm answer falls back",
			gen:     reply(`""`),
			message: "salam khoya",
			want:    "salam khoya",
		},
		{
			name:    "arabic prefix cut on runes",
			gen:     failing(errors.New("down")),
			message: "وين نلقى صيدلية مفتوحة في الليل؟",
			want:    "وين نلقى صيدلية مفتو...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(t, testConfig(), tt.gen)

			got, err := p.Title(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitlePrompt(t *testing.T) {
	gen := reply("General Chat")
	p := newProcessor(t, testConfig(), gen)

	_, err := p.Title(context.Background(), "salam")
	require.NoError(t, err)

	require.Len(t, gen.last.Messages, 1)
	assert.Equal(t, "user", gen.last.Messages[0].Role)
	assert.Contains(t, gen.last.Messages[0].Content, `User message: "salam"`)
}

func TestTitleRejectsEmptyMessage(t *testing.T) {
	p := newProcessor(t, testConfig(), reply("x"))
	_, err := p.Title(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
