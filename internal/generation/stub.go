package generation

import (
	"context"
	"sync"
)

// StubModel is a deterministic Model for tests and offline runs. Respond
// computes the answer for each prompt; a nil Respond echoes the prompt.
type StubModel struct {
	Respond func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// Generate records the prompt and returns the stubbed answer.
func (m *StubModel) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Respond == nil {
		return prompt, nil
	}
	return m.Respond(prompt)
}

// Prompts returns the prompts received so far.
func (m *StubModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
