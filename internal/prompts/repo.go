package prompts

import (
	"context"
	"time"
)

// Repo defines persistence operations for prompt configurations.
// Region and country display names are not stored; the service resolves
// them through the regions lookup.
type Repo interface {
	List(ctx context.Context, brandName, countryCode string) ([]Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, item Item) (int64, error)
	Update(ctx context.Context, item Item) error
	SetActive(ctx context.Context, id int64, active bool, updatedBy string, at time.Time) error
}
