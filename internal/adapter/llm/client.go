// Package llm proposes daily schedules by prompting a chat model.
package llm

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat model backend.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	// ChatJSON decodes the model's reply into result.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
