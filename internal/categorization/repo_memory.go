package categorization

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.TaskID] = job
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, taskID string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[taskID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) MarkProcessing(ctx context.Context, taskID string, startedAt time.Time) error {
	return r.update(taskID, func(job *Job) {
		job.Status = StatusProcessing
		job.StartedAt = &startedAt
	})
}

func (r *MemoryRepo) MarkCompleted(ctx context.Context, taskID string, result AnalysisResult, storageKey string, completedAt time.Time) error {
	return r.update(taskID, func(job *Job) {
		job.Status = StatusCompleted
		job.Result = &result
		job.StorageKey = storageKey
		job.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) MarkFailed(ctx context.Context, taskID string, message string, completedAt time.Time) error {
	return r.update(taskID, func(job *Job) {
		job.Status = StatusFailed
		job.ErrorMessage = message
		job.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) update(taskID string, fn func(*Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[taskID]
	if !ok {
		return ErrNotFound
	}
	fn(&job)
	r.jobs[taskID] = job
	return nil
}
