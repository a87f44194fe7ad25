package agentlogs

import (
	"context"
	"strings"
	"time"
)

// Service reads and records agent transcripts.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Get returns the transcript for one transaction. An unknown transaction
// yields an empty list, not an error.
func (s *Service) Get(ctx context.Context, transactionID string) (Response, error) {
	logs, err := s.Repo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return Response{}, err
	}
	if logs == nil {
		logs = []Entry{}
	}
	return Response{Logs: logs}, nil
}

// Record appends one transcript line. Blank lines and blank transaction
// ids are dropped silently.
func (s *Service) Record(ctx context.Context, transactionID, line string) error {
	transactionID = strings.TrimSpace(transactionID)
	line = strings.TrimSpace(line)
	if transactionID == "" || line == "" {
		return nil
	}
	return s.Repo.Append(ctx, Entry{
		TransactionID: transactionID,
		Log:           line,
		CreatedAt:     s.now().UTC(),
	})
}
