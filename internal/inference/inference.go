// Package inference defines the contract for chat-completion calls against an
// external language model.
package inference

import (
	"context"
)

// Client interface defines the methods for AI completion operations
type Client interface {
	Complete(ctx context.Context, params CompletionRequest) (CompletionResponse, error)
}

// Role tags a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry of a conversation. Insertion order is
// the prompt history and is meaningful.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest holds the conversation for a single completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
}

// CompletionResponse holds the raw completion text of the first choice.
type CompletionResponse struct {
	Content string
}

// UserMessage builds a one-message conversation from free text.
func UserMessage(text string) CompletionRequest {
	return CompletionRequest{
		Messages: []Message{
			{Role: RoleUser, Content: text},
		},
	}
}

const (
	// DefaultMaxRetryAttempts is the retry budget when none is configured.
	// Zero keeps completion calls single-shot.
	DefaultMaxRetryAttempts = 0
)
