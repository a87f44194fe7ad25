package feedback

import "context"

// Repo defines persistence operations for brand feedback.
type Repo interface {
	Get(ctx context.Context, regionCode, countryCode, brandName string) (Entry, error)
	Upsert(ctx context.Context, entry Entry) (Entry, error)
}
