package categorization

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"invoice-assistant/internal/shared/server/middleware"
	"invoice-assistant/internal/shared/server/respond"
	"invoice-assistant/internal/shared/telemetry"
)

const (
	maxUploadBytes   = 10 << 20
	defaultBatchSize = 10
)

// Handler exposes the upload, websocket, status and artifact endpoints.
type Handler struct {
	Service  *Service
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		Service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes mounts the categorization routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/categorization")
	grp.POST("/upload-excel", h.upload)
	grp.GET("/ws/:task_id", h.taskWS)
	grp.GET("/status/:task_id", h.status)
	grp.GET("/result/:task_id/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1024)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	defer file.Close()
	if header.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 10MB limit", nil)
		return
	}

	batchSize := defaultBatchSize
	if v := strings.TrimSpace(c.PostForm("batch_size")); v != "" {
		batchSize, err = strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrBadBatchSize.Error(), nil)
			return
		}
	}
	if err := ValidateBatchSize(batchSize); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	asyncMode := false
	if v := strings.TrimSpace(c.PostForm("async_mode")); v != "" {
		asyncMode, err = strconv.ParseBool(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "async_mode must be a boolean", nil)
			return
		}
	}

	records, err := ParseRecords(header.Filename, file)
	switch {
	case errors.Is(err, ErrUnsupportedFile), errors.Is(err, ErrNoRows):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not read the file", nil)
		return
	}

	username := middleware.UsernameFromContext(c)
	if asyncMode {
		ack, err := h.Service.StartAsync(c.Request.Context(), username, header.Filename, header.Size, records, batchSize)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "could not start processing", nil)
			return
		}
		c.JSON(http.StatusOK, ack)
		return
	}

	result, err := h.Service.ProcessSync(c.Request.Context(), username, header.Filename, records, batchSize)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "categorization failed", nil)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) taskWS(c *gin.Context) {
	taskID := c.Param("task_id")
	job, err := h.Service.Job(c.Request.Context(), taskID)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown task", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load task", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		telemetry.Error("ws.upgrade_failed", map[string]any{"task_id": taskID, "error": err.Error()})
		return
	}

	// A task that finished before the subscriber attached still gets
	// its terminal frame.
	if writeTerminalFrame(conn, taskID, job) {
		_ = conn.Close()
		return
	}

	if !h.Service.Hub.Subscribe(taskID, conn) {
		// The task finished between the lookup above and the subscribe
		// attempt. The hub will never broadcast for it again, so replay
		// the terminal frame instead of leaving the subscriber hanging.
		if job, err := h.Service.Job(c.Request.Context(), taskID); err == nil {
			writeTerminalFrame(conn, taskID, job)
		}
		_ = conn.Close()
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.Service.Hub.Unsubscribe(taskID, conn)
	_ = conn.Close()
}

func writeTerminalFrame(conn *websocket.Conn, taskID string, job Job) bool {
	switch {
	case job.Status == StatusCompleted && job.Result != nil:
		_ = conn.WriteJSON(Frame{Type: FrameCompletion, TaskID: taskID, Data: *job.Result})
		return true
	case job.Status == StatusFailed:
		_ = conn.WriteJSON(Frame{Type: FrameCompletion, TaskID: taskID, Data: AnalysisResult{
			Success:  false,
			TaskID:   taskID,
			FileName: job.FileName,
		}})
		return true
	}
	return false
}

func (h *Handler) status(c *gin.Context) {
	job, err := h.Service.Job(c.Request.Context(), c.Param("task_id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "unknown task", nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load task", nil)
	default:
		c.JSON(http.StatusOK, job)
	}
}

func (h *Handler) download(c *gin.Context) {
	rc, name, err := h.Service.OpenArtifact(c.Request.Context(), c.Param("task_id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "unknown task", nil)
		return
	case errors.Is(err, ErrResultNotReady):
		respond.Error(c, http.StatusConflict, "not_ready", "result is not ready", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not open artifact", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "text/csv")
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Error("categorization.download_failed", map[string]any{"error": err.Error()})
	}
}
