package invoices

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu       sync.RWMutex
	invoices []InvoiceHeader
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Seed replaces the stored invoice headers. Intended for dev and tests.
func (r *MemoryRepo) Seed(headers []InvoiceHeader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = append([]InvoiceHeader(nil), headers...)
}

// Exists reports whether an invoice with the given number and header ID
// is stored.
func (r *MemoryRepo) Exists(invoiceNumber, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.invoices {
		if h.InvoiceNumber == invoiceNumber && h.ID == id {
			return true
		}
	}
	return false
}

// SetStatus updates the status of a stored invoice header. It reports
// whether the header was found.
func (r *MemoryRepo) SetStatus(id, status string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			r.invoices[i].Status = status
			return true
		}
	}
	return false
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]InvoiceHeader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []InvoiceHeader
	for _, h := range r.invoices {
		if matches(h, filter) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matches(h InvoiceHeader, f Filter) bool {
	if f.FromDate != nil && f.ToDate != nil {
		day := dateOnly(h.CreatedAt)
		if day.Before(dateOnly(*f.FromDate)) || day.After(dateOnly(*f.ToDate)) {
			return false
		}
	}
	if f.Region != "" && h.Region != f.Region {
		return false
	}
	if f.Country != "" && h.CountryCode != f.Country {
		return false
	}
	if f.Vendor != "" && !strings.Contains(strings.ToLower(h.SupplierName), strings.ToLower(f.Vendor)) {
		return false
	}
	if f.BrandName != "" && h.BrandName != f.BrandName {
		return false
	}
	if f.PONumber != "" && h.PONumber != f.PONumber {
		return false
	}
	if f.InvoiceNumber != "" && h.InvoiceNumber != f.InvoiceNumber {
		return false
	}
	if f.InvoiceType != "" && h.InvoiceType != f.InvoiceType {
		return false
	}
	if f.Status != "" && h.Status != f.Status {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
