package mocks

import (
	"context"
	"sync"

	"github.com/teilomillet/gollm"
	"github.com/teilomillet/gollm/llm"
)

// MockGenerator stands in for a gollm.LLM in tests. It satisfies
// provider.Generator and records every prompt it receives.
//
//	gen := mocks.NewMockGenerator(func(ctx context.Context, p *gollm.Prompt) (string, error) {
//	    return "Salam khoya!", nil
//	})
type MockGenerator struct {
	GenerateFunc func(context.Context, *gollm.Prompt) (string, error)

	mu      sync.Mutex
	prompts []*gollm.Prompt
}

// NewMockGenerator creates a MockGenerator. A nil generateFunc makes
// Generate return an empty string.
func NewMockGenerator(generateFunc func(context.Context, *gollm.Prompt) (string, error)) *MockGenerator {
	return &MockGenerator{GenerateFunc: generateFunc}
}

// Reply returns a MockGenerator that always answers text.
func Reply(text string) *MockGenerator {
	return NewMockGenerator(func(context.Context, *gollm.Prompt) (string, error) {
		return text, nil
	})
}

// Fail returns a MockGenerator that always fails with err.
func Fail(err error) *MockGenerator {
	return NewMockGenerator(func(context.Context, *gollm.Prompt) (string, error) {
		return "", err
	})
}

// Generate records prompt and delegates to GenerateFunc. Options are ignored.
func (m *MockGenerator) Generate(ctx context.Context, prompt *gollm.Prompt, _ ...llm.GenerateOption) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// Prompts returns the prompts received so far.
func (m *MockGenerator) Prompts() []*gollm.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*gollm.Prompt, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls reports how many times Generate ran.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or nil.
func (m *MockGenerator) LastPrompt() *gollm.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return nil
	}
	return m.prompts[len(m.prompts)-1]
}
