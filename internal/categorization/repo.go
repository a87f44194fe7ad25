package categorization

import (
	"context"
	"time"
)

// Repo defines persistence operations for categorization jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, taskID string) (Job, error)
	MarkProcessing(ctx context.Context, taskID string, startedAt time.Time) error
	MarkCompleted(ctx context.Context, taskID string, result AnalysisResult, storageKey string, completedAt time.Time) error
	MarkFailed(ctx context.Context, taskID string, message string, completedAt time.Time) error
}
