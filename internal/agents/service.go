package agents

import (
	"context"
	"errors"
	"strings"

	"invoice-assistant/internal/llm"
	"invoice-assistant/internal/shared/telemetry"
)

// ErrEmptyQuestion rejects blank questions before they reach a provider.
var ErrEmptyQuestion = errors.New("question is required")

// Recorder persists a transcript line for an agent transaction.
type Recorder interface {
	Record(ctx context.Context, transactionID, line string) error
}

// Service answers analytics questions through the configured LLM client.
type Service struct {
	LLM  llm.Client
	Logs Recorder
}

// NewService constructs a Service. logs may be nil to disable transcripts.
func NewService(client llm.Client, logs Recorder) *Service {
	return &Service{LLM: client, Logs: logs}
}

// Ask forwards the question to the provider for the given domain. Answered
// questions are appended to the session transcript.
func (s *Service) Ask(ctx context.Context, domain, question, sessionID string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	answer, err := s.LLM.Answer(ctx, llm.QuestionInput{
		Question:  question,
		Domain:    domain,
		SessionID: sessionID,
	})
	if err != nil {
		return "", err
	}

	if s.Logs != nil {
		if err := s.Logs.Record(ctx, sessionID, "Q: "+question); err != nil {
			telemetry.Error("agent.transcript_failed", map[string]any{"session_id": sessionID, "error": err.Error()})
		} else if err := s.Logs.Record(ctx, sessionID, "A: "+answer); err != nil {
			telemetry.Error("agent.transcript_failed", map[string]any{"session_id": sessionID, "error": err.Error()})
		}
	}

	telemetry.Info("agent.answered", map[string]any{"domain": domain, "session_id": sessionID})
	return answer, nil
}
