package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-assistant/internal/invoices"
)

func newTestService(t *testing.T) (*Service, *invoices.MemoryRepo) {
	t.Helper()
	invoiceRepo := invoices.NewMemoryRepo()
	invoiceRepo.Seed([]invoices.InvoiceHeader{
		{ID: "inv-0001", InvoiceNumber: "INV-1001", SupplierName: "Acme Corp", Region: "NA", Status: "processed", TotalAmount: 1500, Currency: "USD", CreatedAt: time.Now().UTC()},
	})
	return NewService(NewMemoryRepo(invoiceRepo)), invoiceRepo
}

func validRequest() CreateRequest {
	return CreateRequest{
		PaymentTime: "14:30:00",
		PaymentDate: "2026-08-20",
		BatchAmount: 1500,
		AmountPaid:  1500,
		CreatedBy:   "analyst",
	}
}

func TestCreatePaymentAssignsBatchAndPayRule(t *testing.T) {
	svc, invoiceRepo := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "INV-1001", "inv-0001", validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !resp.Success || !resp.InvoiceStatusUpdated {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Payment.BatchNumber != FirstBatchNumber || resp.Payment.PayRuleID != "1 2000_A" {
		t.Fatalf("generated identifiers wrong: %+v", resp.Payment)
	}
	if resp.Payment.Currency != "USD" {
		t.Fatalf("currency default missed: %+v", resp.Payment)
	}

	second, err := svc.Create(ctx, "INV-1001", "inv-0001", validRequest())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.Payment.BatchNumber != FirstBatchNumber+1 || second.Payment.PayRuleID != "2 2000_B" {
		t.Fatalf("identifiers do not increment: %+v", second.Payment)
	}

	headers, err := invoiceRepo.List(ctx, invoices.Filter{Status: StatusPosted})
	if err != nil {
		t.Fatalf("list invoices: %v", err)
	}
	if len(headers) != 1 || headers[0].ID != "inv-0001" {
		t.Fatalf("invoice not marked posted: %+v", headers)
	}
}

func TestCreatePaymentUnknownInvoice(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Create(context.Background(), "INV-9999", "inv-0001", validRequest()); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "INV-1001", "other-id", validRequest()); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound for mismatched id, got %v", err)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
		want   error
	}{
		{"bad time", func(r *CreateRequest) { r.PaymentTime = "2pm" }, ErrBadPaymentTime},
		{"bad date", func(r *CreateRequest) { r.PaymentDate = "20/08/2026" }, ErrBadPaymentDate},
		{"zero amount", func(r *CreateRequest) { r.AmountPaid = 0 }, ErrBadAmount},
		{"negative amount", func(r *CreateRequest) { r.AmountPaid = -5 }, ErrBadAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			if _, err := svc.Create(ctx, "INV-1001", "inv-0001", req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestListPaymentsPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, "INV-1001", "inv-0001", validRequest()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.TotalCount != 3 || len(all.Payments) != 3 {
		t.Fatalf("totals = %d/%d, want 3/3", all.TotalCount, len(all.Payments))
	}
	if all.TotalAmount != 4500 {
		t.Fatalf("total amount = %v, want 4500", all.TotalAmount)
	}
	// Newest first.
	if all.Payments[0].BatchNumber != FirstBatchNumber+2 {
		t.Fatalf("order wrong: %+v", all.Payments)
	}

	page, err := svc.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page.Payments) != 1 || page.Payments[0].BatchNumber != FirstBatchNumber+1 {
		t.Fatalf("page wrong: %+v", page.Payments)
	}
	if page.TotalCount != 3 {
		t.Fatalf("page total = %d, want 3", page.TotalCount)
	}
}

func TestPayRuleIDFormat(t *testing.T) {
	cases := map[int]string{1: "1 2000_A", 2: "2 2000_B", 26: "26 2000_Z", 27: "27 2000_A"}
	for n, want := range cases {
		if got := PayRuleID(n); got != want {
			t.Errorf("PayRuleID(%d) = %q, want %q", n, got, want)
		}
	}
}
