package llm

import (
	"context"
	"errors"
)

// Analytics domains a question can target.
const (
	DomainInvoice  = "invoice"
	DomainIncident = "incident"
)

// Client abstracts LLM providers for analytics question answering.
type Client interface {
	Answer(ctx context.Context, input QuestionInput) (string, error)
}

// QuestionInput captures one analytics question.
type QuestionInput struct {
	Question  string
	Domain    string
	SessionID string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is the stand-in used when no provider is wired.
type PlaceholderClient struct{}

// Answer returns ErrNotConfigured.
func (PlaceholderClient) Answer(ctx context.Context, input QuestionInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}

var _ Client = (*PlaceholderClient)(nil)
