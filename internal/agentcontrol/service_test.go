package agentcontrol

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAndList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateRequest{Control: "sql_agent_enabled", Value: "true", CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.ID == 0 || !entry.IsActive {
		t.Errorf("entry = %+v", entry)
	}

	if _, err := svc.Create(ctx, CreateRequest{Control: "sql_agent_enabled", Value: "false"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v", err)
	}

	resp, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalCount != 1 {
		t.Errorf("totalCount = %d, want 1", resp.TotalCount)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{Value: "x"}); !errors.Is(err, ErrMissingControl) {
		t.Errorf("missing control err = %v", err)
	}
	if _, err := svc.Create(ctx, CreateRequest{Control: "x"}); !errors.Is(err, ErrMissingValue) {
		t.Errorf("missing value err = %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateRequest{Control: "max_batch", Value: "20"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	off := false
	value := "10"
	updated, err := svc.Update(ctx, entry.ID, UpdateRequest{IsActive: &off, Value: &value, UpdatedBy: "bob"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive || updated.Value != "10" || updated.UpdatedBy != "bob" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.Update(ctx, entry.ID, UpdateRequest{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Errorf("empty update err = %v", err)
	}

	if err := svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}
