package agentcontrol

import "context"

// Repo defines persistence operations for agent controls.
type Repo interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	GetByControl(ctx context.Context, control string) (Entry, error)
	Create(ctx context.Context, entry Entry) (int64, error)
	Update(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, id int64) error
}
