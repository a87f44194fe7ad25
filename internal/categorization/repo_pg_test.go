package categorization

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	job := Job{
		TaskID:       "task-1",
		Username:     "analyst",
		FileName:     "rows.csv",
		BatchSize:    10,
		TotalRows:    42,
		TotalBatches: 5,
		Status:       StatusQueued,
		CreatedAt:    created,
	}

	mock.ExpectExec(`INSERT INTO categorization_jobs`).
		WithArgs("task-1", "analyst", "rows.csv", nil, 10, 42, 5, StatusQueued, created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := AnalysisResult{Success: true, TaskID: "task-1", FileName: "rows.csv", TotalRows: 42}
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	completed := created.Add(time.Minute)
	mock.ExpectQuery(`FROM categorization_jobs`).
		WithArgs("task-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"task_id", "username", "file_name", "storage_key", "batch_size", "total_rows",
			"total_batches", "status", "result", "error_message", "created_at", "started_at", "completed_at",
		}).AddRow("task-1", "analyst", "rows.csv", "objects/task-1.csv", 10, 42, 5,
			StatusCompleted, payload, nil, created, created, completed))

	repo := &PGRepo{DB: db}
	ctx := context.Background()

	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusCompleted || got.StorageKey != "objects/task-1.csv" {
		t.Errorf("unexpected job: %+v", got)
	}
	if got.Result == nil || !got.Result.Success || got.Result.TotalRows != 42 {
		t.Errorf("result not decoded: %+v", got.Result)
	}
	if got.ErrorMessage != "" || got.CompletedAt == nil {
		t.Errorf("null handling off: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM categorization_jobs`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"task_id", "username", "file_name", "storage_key", "batch_size", "total_rows",
			"total_batches", "status", "result", "error_message", "created_at", "started_at", "completed_at",
		}))

	repo := &PGRepo{DB: db}
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoStatusTransitions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	started := time.Date(2026, 4, 2, 8, 1, 0, 0, time.UTC)
	completed := started.Add(30 * time.Second)
	result := AnalysisResult{Success: true, TaskID: "task-1"}
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	mock.ExpectExec(`UPDATE categorization_jobs`).
		WithArgs("task-1", StatusProcessing, started).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE categorization_jobs`).
		WithArgs("task-1", StatusCompleted, payload, "objects/task-1.csv", completed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE categorization_jobs`).
		WithArgs("missing", StatusProcessing, started).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	ctx := context.Background()

	if err := repo.MarkProcessing(ctx, "task-1", started); err != nil {
		t.Fatalf("mark processing: %v", err)
	}
	if err := repo.MarkCompleted(ctx, "task-1", result, "objects/task-1.csv", completed); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if err := repo.MarkProcessing(ctx, "missing", started); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
