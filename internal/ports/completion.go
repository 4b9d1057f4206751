package ports

import (
	"context"
)

// CompletionRequest is a single-turn prompt for the completion service.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// CompletionService is the LLM collaborator. Responses are untrusted text;
// callers must extract structure defensively and fail closed on ambiguity.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
