package ai

import "context"

// LLMProvider sends a system instruction and a user message to a
// text-generation service and returns the raw text response. Callers must
// not assume the response is well formed.
type LLMProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
