package categorization

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"invoice-assistant/internal/shared/storage/object/local"
)

func testRecords() []Record {
	return []Record{
		{Line: 2, Description: "Database timeout on ledger"},
		{Line: 3, Description: "Password reset loop"},
		{Line: 4, Description: "Mystery outage"},
		{Line: 5, Description: "Invoice rejected by ERP"},
		{Line: 6, Description: "API webhook retries exhausted"},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := NewService(repo, NewHub(), local.New(t.TempDir()), NewKeywordCategorizer())
	return svc, repo
}

func TestProcessSync(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.ProcessSync(context.Background(), "alice", "incidents.csv", testRecords(), 5)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !result.Success {
		t.Error("success should be true")
	}
	if result.TotalRows != 5 || result.CategorizedRows != 4 {
		t.Errorf("rows = %d/%d categorized, want 5/4", result.TotalRows, result.CategorizedRows)
	}
	if result.QualityMetrics.UncategorizedCount != 1 {
		t.Errorf("uncategorized = %d, want 1", result.QualityMetrics.UncategorizedCount)
	}
	if result.ArtifactURL == "" {
		t.Error("artifact URL should be set")
	}
}

func TestProcessSyncRejectsBadBatchSize(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProcessSync(context.Background(), "alice", "incidents.csv", testRecords(), 7)
	if !errors.Is(err, ErrBadBatchSize) {
		t.Errorf("err = %v, want ErrBadBatchSize", err)
	}
}

func TestStartAsyncRunsToCompletion(t *testing.T) {
	svc, repo := newTestService(t)

	ack, err := svc.StartAsync(context.Background(), "alice", "incidents.csv", 1234, testRecords(), 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !ack.Success || !ack.AsyncMode || ack.TaskID == "" {
		t.Fatalf("bad ack: %+v", ack)
	}
	if ack.WebsocketURL != "/categorization/ws/"+ack.TaskID {
		t.Errorf("websocket url = %q", ack.WebsocketURL)
	}
	if ack.ProcessingStats.TotalBatches != 1 {
		t.Errorf("total batches = %d, want 1", ack.ProcessingStats.TotalBatches)
	}

	job := waitForStatus(t, repo, ack.TaskID, StatusCompleted)
	if job.Result == nil || job.Result.TotalRows != 5 {
		t.Fatalf("job result = %+v", job.Result)
	}

	rc, name, err := svc.OpenArtifact(context.Background(), ack.TaskID)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer rc.Close()
	if name != ack.TaskID+"_categorized.csv" {
		t.Errorf("artifact name = %q", name)
	}
	data, err := io.ReadAll(rc)
	if err != nil || len(data) == 0 {
		t.Errorf("artifact read: %v (%d bytes)", err, len(data))
	}
}

func TestOpenArtifactBeforeCompletion(t *testing.T) {
	svc, repo := newTestService(t)
	_ = repo.Create(context.Background(), Job{TaskID: "t1", FileName: "x.csv", Status: StatusProcessing, CreatedAt: time.Now()})

	_, _, err := svc.OpenArtifact(context.Background(), "t1")
	if !errors.Is(err, ErrResultNotReady) {
		t.Errorf("err = %v, want ErrResultNotReady", err)
	}
}

func TestJobUnknownTask(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Job(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func waitForStatus(t *testing.T, repo Repo, taskID, status string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := repo.Get(context.Background(), taskID)
		if err == nil && job.Status == status {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never reached %s", taskID, status)
	return Job{}
}
