package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	c, err := New(baseURL, kv)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSyncUploadCreatesNoJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categorization/upload-excel" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if got := r.FormValue("async_mode"); got != "false" {
			t.Errorf("async_mode = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"file_name":"x.csv","total_rows":3,"categorized_rows":3}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	outcome, err := c.UploadAndAnalyze(context.Background(), UploadOptions{
		FileName:  "x.csv",
		File:      strings.NewReader("description\na\nb\nc\n"),
		BatchSize: 5,
		AsyncMode: false,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if outcome.Async() {
		t.Fatalf("sync upload created a job: %+v", outcome.Job)
	}
	if !strings.Contains(string(outcome.Result), `"total_rows":3`) {
		t.Fatalf("result = %s", outcome.Result)
	}
	if got := c.Tracker.Snapshot().Phase; got != PhaseIdle {
		t.Fatalf("tracker phase = %s, want idle", got)
	}
}

func TestFailedUploadCreatesNoJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"validation_error","message":"batch size must be one of 5, 10, 15, 20"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UploadAndAnalyze(context.Background(), UploadOptions{
		FileName:  "x.csv",
		File:      strings.NewReader("description\na\n"),
		BatchSize: 7,
		AsyncMode: false,
	})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "validation_error" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if got := c.Tracker.Snapshot().Phase; got != PhaseIdle {
		t.Fatalf("tracker phase = %s, want idle", got)
	}
}

func TestAttachIsIdempotentPerTask(t *testing.T) {
	var upgrades atomic.Int32
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		upgrades.Add(1)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/categorization/ws/abc"

	registry := NewRegistry(nil)
	deliver := func(Event) {}
	if err := registry.Attach("abc", wsURL, deliver); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := registry.Attach("abc", wsURL, deliver); err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if got := registry.Count(); got != 1 {
		t.Fatalf("connection count = %d, want 1", got)
	}
	if got := upgrades.Load(); got != 1 {
		t.Fatalf("server saw %d connections, want 1", got)
	}

	registry.Close("abc")
	deadline := time.Now().Add(time.Second)
	for registry.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := registry.Count(); got != 0 {
		t.Fatalf("connection count after close = %d, want 0", got)
	}
}
