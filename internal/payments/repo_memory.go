package payments

import (
	"context"
	"sync"

	"invoice-assistant/internal/invoices"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
// Invoice checks run against the in-memory invoice headers.
type MemoryRepo struct {
	mu        sync.RWMutex
	nextID    int64
	nextBatch int
	payments  []Entry
	invoices  *invoices.MemoryRepo
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo backed by the given
// invoice store.
func NewMemoryRepo(invoiceRepo *invoices.MemoryRepo) *MemoryRepo {
	return &MemoryRepo{nextID: 1, nextBatch: FirstBatchNumber, invoices: invoiceRepo}
}

func (r *MemoryRepo) InvoiceExists(ctx context.Context, invoiceNumber, invoiceID string) (bool, error) {
	return r.invoices.Exists(invoiceNumber, invoiceID), nil
}

func (r *MemoryRepo) Create(ctx context.Context, entry Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	entry.BatchNumber = r.nextBatch
	entry.PayRuleID = PayRuleID(int(entry.ID))
	r.nextID++
	r.nextBatch++
	r.payments = append(r.payments, entry)
	return entry, nil
}

func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Entry, int, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.payments)
	totalAmount := 0.0
	for _, p := range r.payments {
		totalAmount += p.AmountPaid
	}

	// Newest first.
	ordered := make([]Entry, 0, total)
	for i := total - 1; i >= 0; i-- {
		ordered = append(ordered, r.payments[i])
	}
	if offset > 0 {
		if offset >= len(ordered) {
			ordered = nil
		} else {
			ordered = ordered[offset:]
		}
	}
	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered, total, totalAmount, nil
}

func (r *MemoryRepo) MarkInvoicePosted(ctx context.Context, invoiceID string) (bool, error) {
	return r.invoices.SetStatus(invoiceID, StatusPosted), nil
}
