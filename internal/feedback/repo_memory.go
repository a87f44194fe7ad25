package feedback

import (
	"context"
	"sync"
)

type brandKey struct {
	region  string
	country string
	brand   string
}

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[brandKey]Entry
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, entries: make(map[brandKey]Entry)}
}

func (r *MemoryRepo) Get(ctx context.Context, regionCode, countryCode, brandName string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[brandKey{regionCode, countryCode, brandName}]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := brandKey{entry.RegionCode, entry.CountryCode, entry.BrandName}
	if existing, ok := r.entries[key]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.CreatedBy = existing.CreatedBy
	} else {
		entry.ID = r.nextID
		r.nextID++
	}
	r.entries[key] = entry
	return entry, nil
}
