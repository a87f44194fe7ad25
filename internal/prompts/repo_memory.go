package prompts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Item
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, items: make(map[int64]Item)}
}

func (r *MemoryRepo) List(ctx context.Context, brandName, countryCode string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Item
	for _, item := range r.items {
		if item.BrandName == brandName && item.CountryCode == countryCode {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version > out[j].Version
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *MemoryRepo) Create(ctx context.Context, item Item) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *MemoryRepo) SetActive(ctx context.Context, id int64, active bool, updatedBy string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.IsActive = active
	item.UpdatedAt = at
	item.UpdatedBy = updatedBy
	r.items[id] = item
	return nil
}
