// Package llm writes pull request summaries with a generative model.
package llm

import "context"

// Client abstracts LLM API interaction for testability.
type Client interface {
	// Summarize sends a prompt to the LLM and returns the markdown it wrote.
	Summarize(ctx context.Context, prompt string) (string, error)
}
