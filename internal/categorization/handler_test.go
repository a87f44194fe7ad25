package categorization

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// raceRepo reports the job as processing on the first Get and as
// completed afterwards, mimicking a job that finishes between the
// handler's lookup and its hub subscription.
type raceRepo struct {
	mu     sync.Mutex
	gets   int
	result AnalysisResult
}

var _ Repo = (*raceRepo)(nil)

func (r *raceRepo) Create(ctx context.Context, job Job) error { return nil }

func (r *raceRepo) Get(ctx context.Context, taskID string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	job := Job{TaskID: taskID, FileName: "rows.csv", Status: StatusProcessing, CreatedAt: time.Now()}
	if r.gets > 1 {
		job.Status = StatusCompleted
		job.Result = &r.result
	}
	return job, nil
}

func (r *raceRepo) MarkProcessing(ctx context.Context, taskID string, startedAt time.Time) error {
	return nil
}

func (r *raceRepo) MarkCompleted(ctx context.Context, taskID string, result AnalysisResult, storageKey string, completedAt time.Time) error {
	return nil
}

func (r *raceRepo) MarkFailed(ctx context.Context, taskID string, message string, completedAt time.Time) error {
	return nil
}

func TestSubscribeAfterTaskCloseReplaysTerminalFrame(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	// The job finished and tore its subscribers down before this
	// subscriber arrived.
	hub.CloseTask("task-1")

	repo := &raceRepo{result: AnalysisResult{Success: true, TaskID: "task-1", FileName: "rows.csv"}}
	svc := NewService(repo, hub, nil, NewKeywordCategorizer())
	handler := NewHandler(svc)

	router := gin.New()
	handler.RegisterRoutes(router.Group(""))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/categorization/ws/task-1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("expected a terminal frame, got read error: %v", err)
	}
	if frame.Type != FrameCompletion || frame.TaskID != "task-1" {
		t.Fatalf("frame = %+v", frame)
	}
}

func TestHubRejectsSubscribeAfterClose(t *testing.T) {
	hub := NewHub()
	if !hub.Subscribe("open-task", nil) {
		t.Fatalf("subscribe to open task refused")
	}
	hub.Unsubscribe("open-task", nil)

	hub.CloseTask("done-task")
	if hub.Subscribe("done-task", nil) {
		t.Fatalf("subscribe accepted for a closed task")
	}
	if got := hub.Subscribers("done-task"); got != 0 {
		t.Fatalf("subscribers = %d, want 0", got)
	}
}
