package llm

import (
	"context"
	"errors"
)

// Message is one role-tagged entry in a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: "system", Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: "user", Content: content}
}

// Client abstracts chat-completion providers. Implementations return the
// assistant's raw text content, which callers must treat as untrusted.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ErrEmptyResponse is returned when the provider answers with no content.
var ErrEmptyResponse = errors.New("llm returned empty response")

// ErrNotConfigured is returned by the disabled client when no provider
// credentials are available.
var ErrNotConfigured = errors.New("llm provider not configured")

type disabledClient struct{}

func (disabledClient) Chat(context.Context, []Message) (string, error) {
	return "", ErrNotConfigured
}

// Disabled returns a Client whose calls always fail with ErrNotConfigured.
// It lets the server start without credentials; LLM-backed features then
// report errors instead of panicking on a nil client.
func Disabled() Client {
	return disabledClient{}
}
