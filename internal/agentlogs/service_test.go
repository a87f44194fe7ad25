package agentlogs

import (
	"context"
	"testing"
)

func TestRecordThenGet(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.Record(ctx, "txn-1", "Q: total spend last month?"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, "txn-1", "A: $41,200 across 37 invoices."); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, "txn-2", "Q: open incidents?"); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp, err := svc.Get(ctx, "txn-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(resp.Logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(resp.Logs))
	}
	if resp.Logs[0].Log != "Q: total spend last month?" || resp.Logs[1].Log != "A: $41,200 across 37 invoices." {
		t.Fatalf("order wrong: %+v", resp.Logs)
	}
	if resp.Logs[0].TransactionID != "txn-1" {
		t.Errorf("transaction id = %q", resp.Logs[0].TransactionID)
	}
}

func TestGetUnknownTransactionIsEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	resp, err := svc.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.Logs == nil || len(resp.Logs) != 0 {
		t.Fatalf("logs = %#v, want empty non-nil slice", resp.Logs)
	}
}

func TestRecordDropsBlankInput(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Record(ctx, "", "orphan line"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, "txn-1", "   "); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp, err := svc.Get(ctx, "txn-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(resp.Logs) != 0 {
		t.Fatalf("blank input stored: %+v", resp.Logs)
	}
}
