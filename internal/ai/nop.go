package ai

import (
	"context"

	"github.com/amishk599/aijobradar/internal/model"
)

// NopProvider is used when no inference backend is configured. Every call
// fails with model.ErrAIDisabled, so callers take their fallback path.
type NopProvider struct{}

// NewNopProvider returns a NopProvider.
func NewNopProvider() *NopProvider {
	return &NopProvider{}
}

// Complete always returns model.ErrAIDisabled.
func (NopProvider) Complete(_ context.Context, _, _ string) (string, error) {
	return "", model.ErrAIDisabled
}
