// File: internal/llmclient/client.go

// Package llmclient is the boundary to the decision-making model. It sends
// role-tagged message history and returns the model's raw text response;
// interpreting that text is the caller's problem. Transport-level retry with
// exponential backoff lives here and only here — the automation loop itself
// never retries.
package llmclient

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one element of the conversation history.
type Message struct {
	Role    string
	Content string
}

// Client asks the model for its next decision given the system instructions
// and the accumulated conversation.
type Client interface {
	Decide(ctx context.Context, system string, history []Message) (string, error)
}
