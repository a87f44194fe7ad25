package invoices

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "invoice_number", "po_number", "supplier_name", "brand_name", "region",
		"supplier_country_code", "invoice_type", "status", "total_amount", "currency",
		"received_at", "created_at",
	}).AddRow("1", "INV-001", nil, "Acme Corp", "Acme", "NA", "US", "Standard", "Approved", 120.50, "USD", nil, now)

	mock.ExpectQuery(`FROM invoice_headers`).
		WithArgs("NA", "%acme%").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	out, err := repo.List(context.Background(), Filter{Region: "NA", Vendor: "acme"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("rows = %d, want 1", len(out))
	}
	if out[0].SupplierName != "Acme Corp" || out[0].TotalAmount != 120.50 {
		t.Errorf("unexpected row: %+v", out[0])
	}
	if out[0].PONumber != "" || out[0].ReceivedAt != nil {
		t.Errorf("null columns should stay zero, got %+v", out[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
