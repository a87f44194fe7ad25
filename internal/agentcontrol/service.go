package agentcontrol

import (
	"context"
	"strings"
	"time"
)

// Service contains business logic for agent controls.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// List returns every control entry.
func (s *Service) List(ctx context.Context) (ListResponse, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return ListResponse{Controls: entries, TotalCount: len(entries)}, nil
}

// Get returns one control entry.
func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	return s.Repo.Get(ctx, id)
}

// Create validates and stores a new control entry.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Entry, error) {
	req.Control = strings.TrimSpace(req.Control)
	req.Value = strings.TrimSpace(req.Value)
	if req.Control == "" {
		return Entry{}, ErrMissingControl
	}
	if req.Value == "" {
		return Entry{}, ErrMissingValue
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := s.now().UTC()
	entry := Entry{
		Control:   req.Control,
		IsActive:  active,
		Value:     req.Value,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: req.CreatedBy,
	}
	id, err := s.Repo.Create(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = id
	return entry, nil
}

// Update patches a control entry.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Entry, error) {
	if req.IsActive == nil && req.Value == nil {
		return Entry{}, ErrNothingToUpdate
	}

	entry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if req.Value != nil {
		value := strings.TrimSpace(*req.Value)
		if value == "" {
			return Entry{}, ErrMissingValue
		}
		entry.Value = value
	}
	entry.UpdatedAt = s.now().UTC()
	entry.UpdatedBy = req.UpdatedBy

	if err := s.Repo.Update(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Delete removes a control entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
