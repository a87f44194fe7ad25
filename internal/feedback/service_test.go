package feedback

import (
	"context"
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestGetWithoutFeedback(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	resp, err := svc.Get(context.Background(), "emea", "de", "Jungheinrich")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.HasActiveFeedback {
		t.Fatalf("expected no active feedback: %+v", resp)
	}
	if resp.RegionCode != "EMEA" || resp.CountryCode != "DE" || resp.BrandName != "jungheinrich" {
		t.Fatalf("key not normalized: %+v", resp)
	}
}

func TestSubmitThenGet(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	resp, err := svc.Submit(ctx, "EMEA", "DE", "jungheinrich", SubmitRequest{
		Feedback:  "invoices often misclassified",
		Rating:    intPtr(3),
		Category:  "accuracy",
		UpdatedBy: "analyst",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.HasActiveFeedback || resp.Rating != 3 || resp.UpdatedBy != "analyst" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	got, err := svc.Get(ctx, "EMEA", "DE", "jungheinrich")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasActiveFeedback || got.Feedback != "invoices often misclassified" {
		t.Fatalf("stored feedback missing: %+v", got)
	}
	if got.LastUpdated == "" {
		t.Fatalf("lastUpdated not set")
	}
}

func TestSubmitOverwritesExisting(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "NA", "US", "contoso", SubmitRequest{Feedback: "first pass", UpdatedBy: "alice"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	resp, err := svc.Submit(ctx, "NA", "US", "contoso", SubmitRequest{Feedback: "second pass", Rating: intPtr(5), UpdatedBy: "bob"})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if resp.Feedback != "second pass" || resp.Rating != 5 || resp.UpdatedBy != "bob" {
		t.Fatalf("overwrite missed fields: %+v", resp)
	}

	// Creation metadata survives the overwrite.
	entry, err := repo.Get(ctx, "NA", "US", "contoso")
	if err != nil {
		t.Fatalf("repo get: %v", err)
	}
	if entry.CreatedBy != "alice" || entry.UpdatedBy != "bob" {
		t.Fatalf("creation metadata lost: %+v", entry)
	}
}

func TestSubmitRejectsBadRating(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.Submit(context.Background(), "NA", "US", "contoso", SubmitRequest{Rating: intPtr(rating)}); !errors.Is(err, ErrBadRating) {
			t.Fatalf("rating %d: expected ErrBadRating, got %v", rating, err)
		}
	}
}
