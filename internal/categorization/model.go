package categorization

import "time"

// Job statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is one categorization run over an uploaded spreadsheet.
type Job struct {
	TaskID       string          `json:"taskId"`
	Username     string          `json:"username,omitempty"`
	FileName     string          `json:"fileName"`
	StorageKey   string          `json:"-"`
	BatchSize    int             `json:"batchSize"`
	TotalRows    int             `json:"totalRows"`
	TotalBatches int             `json:"totalBatches"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// Record is one spreadsheet row to categorize.
type Record struct {
	Line        int    `json:"line"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// CategoryCount is one category/count pair in the result breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// QualityMetrics summarizes how well the run categorized its input.
type QualityMetrics struct {
	CategorizedRate    float64 `json:"categorized_rate"`
	UncategorizedCount int     `json:"uncategorized_count"`
	DistinctCategories int     `json:"distinct_categories"`
}

// AnalysisResult is the terminal payload of a categorization run. It is
// returned directly from synchronous uploads and carried by the
// completion frame for asynchronous ones.
type AnalysisResult struct {
	Success           bool            `json:"success"`
	TaskID            string          `json:"task_id,omitempty"`
	FileName          string          `json:"file_name"`
	TotalRows         int             `json:"total_rows"`
	CategorizedRows   int             `json:"categorized_rows"`
	Categories        []CategoryCount `json:"categories"`
	QualityMetrics    QualityMetrics  `json:"quality_metrics"`
	ArtifactURL       string          `json:"artifact_url,omitempty"`
	ProcessingSeconds float64         `json:"processing_seconds"`
}

// Frame is one JSON message pushed over the per-task channel.
type Frame struct {
	Type   string `json:"type"`
	TaskID string `json:"task_id"`
	Data   any    `json:"data"`
}

// Frame types.
const (
	FrameProgress   = "progress"
	FrameCompletion = "completion"
)

// Progress statuses carried by progress frames.
const (
	ProgressProcessing    = "processing"
	ProgressBatchComplete = "batch_complete"
)

// ProgressData is the payload of a progress frame, emitted when a batch
// starts and again when it finishes.
type ProgressData struct {
	Status              string  `json:"status"`
	CurrentBatch        int     `json:"current_batch"`
	TotalBatches        int     `json:"total_batches"`
	Processed           int     `json:"processed"`
	Total               int     `json:"total"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	ThroughputPerMinute float64 `json:"throughput_per_minute"`
	Message             string  `json:"message"`
}

// FileInfo describes the accepted upload in the async acknowledgement.
type FileInfo struct {
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	TotalRows int    `json:"total_rows"`
}

// ProcessingStats describes how the run was split into batches.
type ProcessingStats struct {
	BatchSize    int `json:"batch_size"`
	TotalBatches int `json:"total_batches"`
}

// AsyncResponse acknowledges an asynchronous upload. The caller is
// expected to open the websocket URL and wait for frames.
type AsyncResponse struct {
	Success                    bool            `json:"success"`
	AsyncMode                  bool            `json:"async_mode"`
	TaskID                     string          `json:"task_id"`
	WebsocketURL               string          `json:"websocket_url"`
	EstimatedCompletionMinutes float64         `json:"estimated_completion_minutes"`
	FileInfo                   FileInfo        `json:"file_info"`
	ProcessingStats            ProcessingStats `json:"processing_stats"`
	Message                    string          `json:"message"`
}
