package narrative

import (
	"context"
	"sync"
)

// Mock implements Generator for tests. Responses are keyed by prompt; prompts
// without a response echo a fixed text. Calls are counted.
type Mock struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	calls     int
	// Block, when set, makes Generate wait until it is closed or ctx ends.
	Block chan struct{}
}

// NewMock creates a Mock returning responses by prompt.
func NewMock(responses map[string]string) *Mock {
	if responses == nil {
		responses = map[string]string{}
	}
	return &Mock{responses: responses}
}

// WithError makes every call fail with err.
func (m *Mock) WithError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Calls returns how many times Generate was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Mock) Provider() string { return "mock" }
func (m *Mock) Model() string    { return "mock-model" }

func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	err := m.err
	text, ok := m.responses[prompt]
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if !ok {
		text = "Narrative for: " + prompt
	}
	return text, nil
}

// Compile-time interface check
var _ Generator = (*Mock)(nil)
