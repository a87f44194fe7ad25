package agentlogs

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string][]Entry)}
}

func (r *MemoryRepo) Append(ctx context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.TransactionID] = append(r.entries[entry.TransactionID], entry)
	return nil
}

func (r *MemoryRepo) ListByTransaction(ctx context.Context, transactionID string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries[transactionID]...), nil
}
