package incidents

import "context"

// Repo defines persistence operations for incidents.
type Repo interface {
	List(ctx context.Context, filter Filter) ([]Incident, error)
}
