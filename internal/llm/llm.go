package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for profile summarization and post generation.
type Client interface {
	SummarizeProfile(ctx context.Context, input SummarizeInput) (string, error)
	GeneratePost(ctx context.Context, input GenerateInput) (string, error)
}

// SummarizeInput captures the profile fields to summarize.
type SummarizeInput struct {
	Skills     []string
	Experience []string
	Interests  []string
}

// GenerateInput captures the inputs for post generation.
type GenerateInput struct {
	ProfileSummary string
	Trends         []string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// SummarizeProfile returns ErrNotImplemented.
func (PlaceholderClient) SummarizeProfile(ctx context.Context, input SummarizeInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}

// GeneratePost returns ErrNotImplemented.
func (PlaceholderClient) GeneratePost(ctx context.Context, input GenerateInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
