package agentcontrol

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64]Entry
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, entries: make(map[int64]Entry)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Control < out[j].Control })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRepo) GetByControl(ctx context.Context, control string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.Control == control {
			return entry, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, entry Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.Control == entry.Control {
			return 0, ErrDuplicate
		}
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries[entry.ID] = entry
	return entry.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return ErrNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}
