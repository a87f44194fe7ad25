package regions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for the region/country hierarchy.
type Repo interface {
	ListRegionsWithCountries(ctx context.Context) ([]Region, error)
}
