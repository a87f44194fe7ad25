package incidents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu        sync.RWMutex
	incidents []Incident
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Seed replaces the stored incidents. Intended for dev and tests.
func (r *MemoryRepo) Seed(incidents []Incident) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incidents = append([]Incident(nil), incidents...)
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Incident
	for _, in := range r.incidents {
		if matches(in, filter) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OpenedAt.After(out[j].OpenedAt)
	})
	return out, nil
}

func matches(in Incident, f Filter) bool {
	if f.DateFrom != nil && in.OpenedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && in.OpenedAt.After(*f.DateTo) {
		return false
	}
	if f.BusinessLine != "" && in.BusinessLine != f.BusinessLine {
		return false
	}
	if f.ApplicationName != "" && in.ApplicationName != f.ApplicationName {
		return false
	}
	if f.MajorIncidentOnly && !in.MajorIncident {
		return false
	}
	if f.RootCauseCategory != "" && in.RootCauseCategory != f.RootCauseCategory {
		return false
	}
	if f.ResolutionCategory != "" && in.ResolutionCategory != f.ResolutionCategory {
		return false
	}
	return true
}
