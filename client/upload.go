package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// UploadOptions is one upload-and-analyze invocation.
type UploadOptions struct {
	FileName  string
	File      io.Reader
	BatchSize int
	AsyncMode bool
}

// UploadOutcome is either a complete synchronous result or an accepted
// async job, never both.
type UploadOutcome struct {
	// Result is the full analysis payload for synchronous runs.
	Result json.RawMessage
	// Job is set when the backend accepted the upload for background
	// processing. Tracking has already started by the time the outcome
	// is returned.
	Job *JobAccepted
}

// Async reports whether the upload branched into a background job.
func (o UploadOutcome) Async() bool { return o.Job != nil }

type asyncAck struct {
	Success                    bool    `json:"success"`
	AsyncMode                  bool    `json:"async_mode"`
	TaskID                     string  `json:"task_id"`
	WebsocketURL               string  `json:"websocket_url"`
	EstimatedCompletionMinutes float64 `json:"estimated_completion_minutes"`
	ProcessingStats            struct {
		BatchSize    int `json:"batch_size"`
		TotalBatches int `json:"total_batches"`
	} `json:"processing_stats"`
}

// UploadAndAnalyze posts the file for categorization. When the response
// acknowledges an async job, the tracker starts following it
// immediately; no progress view needs to be opened first. Non-2xx
// responses and transport failures return an error and create no job.
func (c *Client) UploadAndAnalyze(ctx context.Context, opts UploadOptions) (UploadOutcome, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", opts.FileName)
	if err != nil {
		return UploadOutcome{}, err
	}
	if _, err := io.Copy(part, opts.File); err != nil {
		return UploadOutcome{}, err
	}
	if err := form.WriteField("batch_size", strconv.Itoa(opts.BatchSize)); err != nil {
		return UploadOutcome{}, err
	}
	if err := form.WriteField("async_mode", strconv.FormatBool(opts.AsyncMode)); err != nil {
		return UploadOutcome{}, err
	}
	if err := form.Close(); err != nil {
		return UploadOutcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/categorization/upload-excel", &buf)
	if err != nil {
		return UploadOutcome{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return UploadOutcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UploadOutcome{}, apiError(resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadOutcome{}, err
	}

	var ack asyncAck
	if err := json.Unmarshal(payload, &ack); err != nil {
		return UploadOutcome{}, err
	}
	if !ack.AsyncMode || ack.TaskID == "" {
		// A complete result; no job is created.
		return UploadOutcome{Result: payload}, nil
	}

	job := JobAccepted{
		TaskID:           ack.TaskID,
		EstimatedMinutes: ack.EstimatedCompletionMinutes,
		TotalBatches:     ack.ProcessingStats.TotalBatches,
	}
	c.Tracker.Start(job, c.ChannelURL(ack.WebsocketURL))
	return UploadOutcome{Job: &job}, nil
}
