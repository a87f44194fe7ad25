package invoices

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for invoice headers.
type Repo interface {
	List(ctx context.Context, filter Filter) ([]InvoiceHeader, error)
}
