// Package llm defines the port for chat-completion backends used by the
// natural-language fallback path.
package llm

import "context"

// Message is one turn of a chat completion request.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Usage reports token consumption for one completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Completion is the result of one chat completion call.
type Completion struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Client is the port interface for an LLM chat-completion backend.
type Client interface {
	// Name returns the provider identifier (e.g. "groq", "openai").
	Name() string

	// Complete runs one chat completion with the given messages.
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}
