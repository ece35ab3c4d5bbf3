package llm

import "context"

// MockClient is a test double for llm.Client.
type MockClient struct {
	Result  string
	Err     error
	Prompts []string
}

// Summarize records the prompt and returns the configured result and error.
func (m *MockClient) Summarize(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Result, m.Err
}
