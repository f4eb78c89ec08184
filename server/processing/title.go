package processing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/teilomillet/gollm"
	"go.uber.org/zap"
)

const (
	maxTitleLength      = 30
	fallbackTitleLength = 20
)

// Title asks the LLM for a 2-4 word conversation title. When the LLM fails
// or answers with something longer than 30 characters, the title is the
// start of the message instead.
func (p *ChatProcessor) Title(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	var buf bytes.Buffer
	if err := p.titlePrompt.Execute(&buf, struct{ Message string }{message}); err != nil {
		return "", fmt.Errorf("title prompt: %w", err)
	}

	prompt := &gollm.Prompt{Messages: []gollm.PromptMessage{{Role: "user", Content: buf.String()}}}
	text, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn("title generation failed, using message prefix", zap.Error(err))
		return fallbackTitle(message), nil
	}

	title := cleanTitle(text)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return fallbackTitle(message), nil
	}
	return title, nil
}

func cleanTitle(s string) string {
	s = strings.NewReplacer(`"`, "", "'", "").Replace(s)
	return strings.TrimSpace(s)
}

func fallbackTitle(message string) string {
	if utf8.RuneCountInString(message) <= fallbackTitleLength {
		return message
	}
	return string([]rune(message)[:fallbackTitleLength]) + "..."
}
