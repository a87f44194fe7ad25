package categorization

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"invoice-assistant/internal/shared/metrics"
	"invoice-assistant/internal/shared/storage/object"
	"invoice-assistant/internal/shared/telemetry"
)

// Seconds of processing budgeted per batch when estimating completion.
const estimateSecondsPerBatch = 15

var allowedBatchSizes = map[int]struct{}{5: {}, 10: {}, 15: {}, 20: {}}

// ValidateBatchSize rejects batch sizes the UI does not offer.
func ValidateBatchSize(n int) error {
	if _, ok := allowedBatchSizes[n]; !ok {
		return ErrBadBatchSize
	}
	return nil
}

// Service runs categorization jobs and publishes their progress.
type Service struct {
	Repo        Repo
	Hub         *Hub
	Store       object.ObjectStore
	Categorizer Categorizer

	// BatchDelay paces async batch processing. Zero disables pacing.
	BatchDelay time.Duration

	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, hub *Hub, store object.ObjectStore, categorizer Categorizer) *Service {
	return &Service{
		Repo:        repo,
		Hub:         hub,
		Store:       store,
		Categorizer: categorizer,
		now:         time.Now,
	}
}

// ProcessSync categorizes all records inline and returns the result.
// No job row or websocket channel is involved.
func (s *Service) ProcessSync(ctx context.Context, username, fileName string, records []Record, batchSize int) (AnalysisResult, error) {
	if err := ValidateBatchSize(batchSize); err != nil {
		return AnalysisResult{}, err
	}
	start := s.now()
	for i := range records {
		category, err := s.Categorizer.Categorize(ctx, records[i].Description)
		if err != nil {
			return AnalysisResult{}, err
		}
		records[i].Category = category
	}

	taskID := uuid.NewString()
	result := buildResult(taskID, fileName, records)
	key, err := s.saveArtifact(ctx, username, taskID, records)
	if err != nil {
		return AnalysisResult{}, err
	}

	result.ArtifactURL = "/categorization/result/" + taskID + "/download"
	result.ProcessingSeconds = s.now().Sub(start).Seconds()

	now := s.now()
	job := Job{
		TaskID:       taskID,
		Username:     username,
		FileName:     fileName,
		StorageKey:   key,
		BatchSize:    batchSize,
		TotalRows:    len(records),
		TotalBatches: totalBatches(len(records), batchSize),
		Status:       StatusQueued,
		CreatedAt:    now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return AnalysisResult{}, err
	}
	if err := s.Repo.MarkCompleted(ctx, taskID, result, key, now); err != nil {
		return AnalysisResult{}, err
	}
	metrics.IncJobStarted()
	metrics.IncJobCompleted()
	metrics.ObserveJobDurationMs(result.ProcessingSeconds * 1000)
	return result, nil
}

// StartAsync registers a job and begins processing it in the background.
// The returned acknowledgement carries the websocket path the caller
// should attach to.
func (s *Service) StartAsync(ctx context.Context, username, fileName string, sizeBytes int64, records []Record, batchSize int) (AsyncResponse, error) {
	if err := ValidateBatchSize(batchSize); err != nil {
		return AsyncResponse{}, err
	}

	taskID := uuid.NewString()
	batches := totalBatches(len(records), batchSize)
	job := Job{
		TaskID:       taskID,
		Username:     username,
		FileName:     fileName,
		BatchSize:    batchSize,
		TotalRows:    len(records),
		TotalBatches: batches,
		Status:       StatusQueued,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return AsyncResponse{}, err
	}

	go s.run(taskID, username, fileName, records, batchSize)

	return AsyncResponse{
		Success:                    true,
		AsyncMode:                  true,
		TaskID:                     taskID,
		WebsocketURL:               "/categorization/ws/" + taskID,
		EstimatedCompletionMinutes: math.Ceil(float64(batches) * estimateSecondsPerBatch / 60),
		FileInfo:                   FileInfo{FileName: fileName, SizeBytes: sizeBytes, TotalRows: len(records)},
		ProcessingStats:            ProcessingStats{BatchSize: batchSize, TotalBatches: batches},
		Message:                    "processing started",
	}, nil
}

// Job returns the stored job row.
func (s *Service) Job(ctx context.Context, taskID string) (Job, error) {
	return s.Repo.Get(ctx, taskID)
}

// OpenArtifact streams the categorized output of a completed job.
func (s *Service) OpenArtifact(ctx context.Context, taskID string) (io.ReadCloser, string, error) {
	job, err := s.Repo.Get(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != StatusCompleted || job.StorageKey == "" {
		return nil, "", ErrResultNotReady
	}
	rc, err := s.Store.Open(ctx, job.StorageKey)
	if err != nil {
		return nil, "", err
	}
	return rc, artifactName(taskID), nil
}

func (s *Service) run(taskID, username, fileName string, records []Record, batchSize int) {
	ctx := context.Background()
	start := s.now()
	if err := s.Repo.MarkProcessing(ctx, taskID, start); err != nil {
		telemetry.Error("categorization.mark_processing_failed", map[string]any{"task_id": taskID, "error": err.Error()})
	}
	metrics.IncJobStarted()

	total := len(records)
	batches := totalBatches(total, batchSize)
	s.Hub.Broadcast(taskID, Frame{Type: FrameProgress, TaskID: taskID, Data: ProgressData{
		Status:       ProgressProcessing,
		TotalBatches: batches,
		Total:        total,
		Message:      "processing " + strconv.Itoa(total) + " rows in " + strconv.Itoa(batches) + " batches",
	}})

	processed := 0
	for b := 0; b < batches; b++ {
		lo := b * batchSize
		hi := lo + batchSize
		if hi > total {
			hi = total
		}
		for i := lo; i < hi; i++ {
			category, err := s.Categorizer.Categorize(ctx, records[i].Description)
			if err != nil {
				s.fail(ctx, taskID, fileName, err)
				return
			}
			records[i].Category = category
		}
		processed += hi - lo

		throughput := 0.0
		if elapsed := s.now().Sub(start).Minutes(); elapsed > 0 {
			throughput = float64(processed) / elapsed
		}
		s.Hub.Broadcast(taskID, Frame{Type: FrameProgress, TaskID: taskID, Data: ProgressData{
			Status:              ProgressBatchComplete,
			CurrentBatch:        b + 1,
			TotalBatches:        batches,
			Processed:           processed,
			Total:               total,
			ProgressPercentage:  math.Round(10000*float64(processed)/float64(total)) / 100,
			ThroughputPerMinute: math.Round(100*throughput) / 100,
			Message:             "batch " + strconv.Itoa(b+1) + " of " + strconv.Itoa(batches) + " categorized",
		}})
		if s.BatchDelay > 0 && b+1 < batches {
			time.Sleep(s.BatchDelay)
		}
	}

	result := buildResult(taskID, fileName, records)
	key, err := s.saveArtifact(ctx, username, taskID, records)
	if err != nil {
		s.fail(ctx, taskID, fileName, err)
		return
	}
	result.ArtifactURL = "/categorization/result/" + taskID + "/download"
	result.ProcessingSeconds = s.now().Sub(start).Seconds()

	if err := s.Repo.MarkCompleted(ctx, taskID, result, key, s.now()); err != nil {
		s.fail(ctx, taskID, fileName, err)
		return
	}
	metrics.IncJobCompleted()
	metrics.ObserveJobDurationMs(result.ProcessingSeconds * 1000)
	telemetry.Info("categorization.completed", map[string]any{
		"task_id": taskID, "rows": total, "batches": batches,
	})

	s.Hub.Broadcast(taskID, Frame{Type: FrameCompletion, TaskID: taskID, Data: result})
	s.Hub.CloseTask(taskID)
}

func (s *Service) fail(ctx context.Context, taskID, fileName string, cause error) {
	telemetry.Error("categorization.failed", map[string]any{"task_id": taskID, "error": cause.Error()})
	metrics.IncJobFailed()
	if err := s.Repo.MarkFailed(ctx, taskID, cause.Error(), s.now()); err != nil {
		telemetry.Error("categorization.mark_failed_failed", map[string]any{"task_id": taskID, "error": err.Error()})
	}
	s.Hub.Broadcast(taskID, Frame{Type: FrameCompletion, TaskID: taskID, Data: AnalysisResult{
		Success:  false,
		TaskID:   taskID,
		FileName: fileName,
	}})
	s.Hub.CloseTask(taskID)
}

func (s *Service) saveArtifact(ctx context.Context, username, taskID string, records []Record) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"line", "description", "category"})
	for _, rec := range records {
		_ = w.Write([]string{strconv.Itoa(rec.Line), rec.Description, rec.Category})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	owner := username
	if owner == "" {
		owner = "system"
	}
	key, _, _, err := s.Store.Save(ctx, owner, artifactName(taskID), &buf)
	return key, err
}

func artifactName(taskID string) string {
	return taskID + "_categorized.csv"
}

func buildResult(taskID, fileName string, records []Record) AnalysisResult {
	counts := map[string]int{}
	categorized := 0
	for _, rec := range records {
		counts[rec.Category]++
		if rec.Category != UncategorizedLabel {
			categorized++
		}
	}

	breakdown := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		breakdown = append(breakdown, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	result := AnalysisResult{
		Success:         true,
		TaskID:          taskID,
		FileName:        fileName,
		TotalRows:       len(records),
		CategorizedRows: categorized,
		Categories:      breakdown,
		QualityMetrics: QualityMetrics{
			UncategorizedCount: len(records) - categorized,
			DistinctCategories: len(counts),
		},
	}
	if len(records) > 0 {
		result.QualityMetrics.CategorizedRate = float64(categorized) / float64(len(records))
	}
	return result
}

func totalBatches(rows, batchSize int) int {
	return (rows + batchSize - 1) / batchSize
}
