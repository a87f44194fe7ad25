package categorization

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. The result column is JSONB.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO categorization_jobs
    (task_id, username, file_name, storage_key, batch_size, total_rows, total_batches, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.TaskID, nullString(job.Username), job.FileName, nullString(job.StorageKey),
		job.BatchSize, job.TotalRows, job.TotalBatches, job.Status, job.CreatedAt)
	return err
}

func (r *PGRepo) Get(ctx context.Context, taskID string) (Job, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT task_id, username, file_name, storage_key, batch_size, total_rows, total_batches,
       status, result, error_message, created_at, started_at, completed_at
FROM categorization_jobs
WHERE task_id = $1`, taskID)

	var job Job
	var username, storageKey, errorMessage sql.NullString
	var result []byte
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&job.TaskID, &username, &job.FileName, &storageKey,
		&job.BatchSize, &job.TotalRows, &job.TotalBatches,
		&job.Status, &result, &errorMessage,
		&job.CreatedAt, &startedAt, &completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, err
	}
	if username.Valid {
		job.Username = username.String
	}
	if storageKey.Valid {
		job.StorageKey = storageKey.String
	}
	if errorMessage.Valid {
		job.ErrorMessage = errorMessage.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if len(result) > 0 {
		var parsed AnalysisResult
		if err := json.Unmarshal(result, &parsed); err != nil {
			return Job{}, err
		}
		job.Result = &parsed
	}
	return job, nil
}

func (r *PGRepo) MarkProcessing(ctx context.Context, taskID string, startedAt time.Time) error {
	return r.exec(ctx, `
UPDATE categorization_jobs SET status = $2, started_at = $3 WHERE task_id = $1`,
		taskID, StatusProcessing, startedAt)
}

func (r *PGRepo) MarkCompleted(ctx context.Context, taskID string, result AnalysisResult, storageKey string, completedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.exec(ctx, `
UPDATE categorization_jobs
SET status = $2, result = $3, storage_key = $4, completed_at = $5
WHERE task_id = $1`,
		taskID, StatusCompleted, payload, nullString(storageKey), completedAt)
}

func (r *PGRepo) MarkFailed(ctx context.Context, taskID string, message string, completedAt time.Time) error {
	return r.exec(ctx, `
UPDATE categorization_jobs
SET status = $2, error_message = $3, completed_at = $4
WHERE task_id = $1`,
		taskID, StatusFailed, message, completedAt)
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
