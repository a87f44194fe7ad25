package payments

import (
	"context"
	"strings"
	"time"

	"invoice-assistant/internal/shared/telemetry"
)

// Service contains business logic for invoice payments.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Create validates and records a payment against an invoice, then flips
// the invoice status to posted.
func (s *Service) Create(ctx context.Context, invoiceNumber, invoiceID string, req CreateRequest) (CreateResponse, error) {
	if _, err := time.Parse("15:04:05", strings.TrimSpace(req.PaymentTime)); err != nil {
		return CreateResponse{}, ErrBadPaymentTime
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(req.PaymentDate)); err != nil {
		return CreateResponse{}, ErrBadPaymentDate
	}
	if req.AmountPaid <= 0 {
		return CreateResponse{}, ErrBadAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	exists, err := s.Repo.InvoiceExists(ctx, invoiceNumber, invoiceID)
	if err != nil {
		return CreateResponse{}, err
	}
	if !exists {
		return CreateResponse{}, ErrInvoiceNotFound
	}

	now := s.now().UTC()
	entry := Entry{
		InvoiceHeaderID: invoiceID,
		InvoiceNumber:   invoiceNumber,
		PaymentTime:     strings.TrimSpace(req.PaymentTime),
		PaymentDate:     strings.TrimSpace(req.PaymentDate),
		BatchAmount:     req.BatchAmount,
		Currency:        currency,
		AmountPaid:      req.AmountPaid,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       req.CreatedBy,
	}
	stored, err := s.Repo.Create(ctx, entry)
	if err != nil {
		return CreateResponse{}, err
	}

	posted, err := s.Repo.MarkInvoicePosted(ctx, invoiceID)
	if err != nil {
		return CreateResponse{}, err
	}

	telemetry.Info("payment.created", map[string]any{
		"invoice_number": invoiceNumber,
		"batch_number":   stored.BatchNumber,
		"pay_rule_id":    stored.PayRuleID,
		"amount_paid":    stored.AmountPaid,
		"currency":       stored.Currency,
	})
	return CreateResponse{
		Success:              true,
		Message:              "payment created",
		Payment:              stored,
		InvoiceStatusUpdated: posted,
	}, nil
}

// List returns payments newest first with the overall totals.
func (s *Service) List(ctx context.Context, limit, offset int) (ListResponse, error) {
	entries, count, totalAmount, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return ListResponse{}, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return ListResponse{Payments: entries, TotalCount: count, TotalAmount: totalAmount}, nil
}
