package agentlogs

import "context"

// Repo stores agent transcript lines.
type Repo interface {
	Append(ctx context.Context, entry Entry) error
	ListByTransaction(ctx context.Context, transactionID string) ([]Entry, error)
}
