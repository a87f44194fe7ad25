package payments

import "context"

// Repo defines persistence operations for invoice payments.
type Repo interface {
	// InvoiceExists checks the invoice header the payment is booked against.
	InvoiceExists(ctx context.Context, invoiceNumber, invoiceID string) (bool, error)
	// Create stores the payment and assigns its ID, batch number, and
	// pay rule ID.
	Create(ctx context.Context, entry Entry) (Entry, error)
	// List returns a page of payments (newest first), the total count,
	// and the total amount paid across all payments. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit, offset int) ([]Entry, int, float64, error)
	// MarkInvoicePosted flips the invoice header status after a payment.
	MarkInvoicePosted(ctx context.Context, invoiceID string) (bool, error)
}
