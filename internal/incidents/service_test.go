package incidents

import (
	"context"
	"testing"
	"time"
)

func seedRepo() *MemoryRepo {
	opened := func(d int) time.Time {
		return time.Date(2026, 2, d, 8, 0, 0, 0, time.UTC)
	}
	resolved := func(d, hours int) *time.Time {
		t := opened(d).Add(time.Duration(hours) * time.Hour)
		return &t
	}
	repo := NewMemoryRepo()
	repo.Seed([]Incident{
		{ID: "1", IncidentNumber: "INC-001", BusinessLine: "Payments", ApplicationName: "Gateway", MajorIncident: true, RootCauseCategory: "Network", ResolutionCategory: "Config Change", OpenedAt: opened(1), ResolvedAt: resolved(1, 4)},
		{ID: "2", IncidentNumber: "INC-002", BusinessLine: "Payments", ApplicationName: "Ledger", RootCauseCategory: "Software", ResolutionCategory: "Hotfix", OpenedAt: opened(2), ResolvedAt: resolved(2, 2)},
		{ID: "3", IncidentNumber: "INC-003", BusinessLine: "Retail", ApplicationName: "Storefront", RootCauseCategory: "Network", OpenedAt: opened(3)},
		{ID: "4", IncidentNumber: "INC-004", BusinessLine: "Retail", ApplicationName: "Storefront", MajorIncident: true, RootCauseCategory: "Hardware", ResolutionCategory: "Replacement", OpenedAt: opened(5), ResolvedAt: resolved(5, 6)},
	})
	return repo
}

func TestAnalyticsAggregates(t *testing.T) {
	svc := NewService(seedRepo())

	result, err := svc.Analytics(context.Background(), Filter{}, 0)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if !result.Success {
		t.Error("success should be true")
	}
	if result.TotalIncidents != 4 || result.MajorIncidents != 2 {
		t.Errorf("totals = %d/%d, want 4/2", result.TotalIncidents, result.MajorIncidents)
	}
	if len(result.RootCauseBreakdown) == 0 || result.RootCauseBreakdown[0].Category != "Network" || result.RootCauseBreakdown[0].Count != 2 {
		t.Errorf("root cause breakdown = %+v, want Network x2 first", result.RootCauseBreakdown)
	}
	if result.QualityMetrics.ResolvedCount != 3 {
		t.Errorf("resolvedCount = %d, want 3", result.QualityMetrics.ResolvedCount)
	}
	if got, want := result.QualityMetrics.AvgResolutionHours, 4.0; got != want {
		t.Errorf("avgResolutionHours = %v, want %v", got, want)
	}
	if got, want := result.QualityMetrics.MajorIncidentPercent, 50.0; got != want {
		t.Errorf("majorIncidentPercent = %v, want %v", got, want)
	}
}

func TestAnalyticsMajorOnly(t *testing.T) {
	svc := NewService(seedRepo())

	result, err := svc.Analytics(context.Background(), Filter{MajorIncidentOnly: true}, 0)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if result.TotalIncidents != 2 {
		t.Errorf("totalIncidents = %d, want 2", result.TotalIncidents)
	}
	for _, in := range result.Incidents {
		if !in.MajorIncident {
			t.Errorf("non-major incident %s in major-only result", in.IncidentNumber)
		}
	}
}

func TestAnalyticsLimitCapsSample(t *testing.T) {
	svc := NewService(seedRepo())

	result, err := svc.Analytics(context.Background(), Filter{}, 2)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(result.Incidents) != 2 {
		t.Errorf("sample = %d incidents, want 2", len(result.Incidents))
	}
	// Aggregates still cover the full set.
	if result.TotalIncidents != 4 {
		t.Errorf("totalIncidents = %d, want 4", result.TotalIncidents)
	}
	// Newest first.
	if result.Incidents[0].IncidentNumber != "INC-004" {
		t.Errorf("first sample = %s, want INC-004", result.Incidents[0].IncidentNumber)
	}
}

func TestAnalyticsDateWindow(t *testing.T) {
	svc := NewService(seedRepo())

	from := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 3, 23, 59, 59, 0, time.UTC)
	result, err := svc.Analytics(context.Background(), Filter{DateFrom: &from, DateTo: &to}, 0)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if result.TotalIncidents != 2 {
		t.Errorf("totalIncidents = %d, want 2", result.TotalIncidents)
	}
}

func TestAnalyticsEmptySet(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	result, err := svc.Analytics(context.Background(), Filter{}, 0)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if result.TotalIncidents != 0 || len(result.Incidents) != 0 {
		t.Errorf("empty repo should yield zero analytics, got %+v", result)
	}
	if result.QualityMetrics.ResolvedRate != 0 {
		t.Errorf("resolvedRate = %v, want 0", result.QualityMetrics.ResolvedRate)
	}
}
