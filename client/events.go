package client

import (
	"encoding/json"
	"errors"
)

// Progress statuses carried by progress events.
const (
	ProgressProcessing    = "processing"
	ProgressBatchComplete = "batch_complete"
)

// Event is the typed union fed into the tracker's reducer. Every event
// is scoped to one task.
type Event interface {
	eventTaskID() string
}

// JobAccepted carries the metadata of a newly accepted async job.
type JobAccepted struct {
	TaskID           string
	EstimatedMinutes float64
	TotalBatches     int
}

// DialStarted marks the beginning of the channel dial for a task.
type DialStarted struct{ TaskID string }

// ChannelOpened marks the channel as ready to stream.
type ChannelOpened struct{ TaskID string }

// ProgressEvent is an incremental batch-progress update.
type ProgressEvent struct {
	TaskID              string  `json:"task_id"`
	Status              string  `json:"status"`
	CurrentBatch        int     `json:"current_batch"`
	TotalBatches        int     `json:"total_batches"`
	Processed           int     `json:"processed"`
	Total               int     `json:"total"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	ThroughputPerMinute float64 `json:"throughput_per_minute"`
	Message             string  `json:"message"`
}

// CompletionEvent is the terminal event carrying the final result. The
// result payload is opaque to the tracker.
type CompletionEvent struct {
	TaskID string
	Result json.RawMessage
}

// ChannelError reports a transport failure on the channel.
type ChannelError struct {
	TaskID string
	Err    error
}

// ChannelClosed reports the channel closing without an error.
type ChannelClosed struct{ TaskID string }

// CancelRequested is the user-initiated reset.
type CancelRequested struct{ TaskID string }

func (e JobAccepted) eventTaskID() string     { return e.TaskID }
func (e DialStarted) eventTaskID() string     { return e.TaskID }
func (e ChannelOpened) eventTaskID() string   { return e.TaskID }
func (e ProgressEvent) eventTaskID() string   { return e.TaskID }
func (e CompletionEvent) eventTaskID() string { return e.TaskID }
func (e ChannelError) eventTaskID() string    { return e.TaskID }
func (e ChannelClosed) eventTaskID() string   { return e.TaskID }
func (e CancelRequested) eventTaskID() string { return e.TaskID }

// ErrMalformedFrame is returned by ParseFrame for payloads that cannot
// be interpreted. Callers log and drop such frames.
var ErrMalformedFrame = errors.New("malformed frame")

type wireFrame struct {
	Type   string          `json:"type"`
	TaskID string          `json:"task_id"`
	Data   json.RawMessage `json:"data"`
}

// ParseFrame decodes one pushed JSON frame into an event.
func ParseFrame(payload []byte) (Event, error) {
	var frame wireFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return nil, ErrMalformedFrame
	}
	switch frame.Type {
	case "progress":
		var ev ProgressEvent
		if err := json.Unmarshal(frame.Data, &ev); err != nil {
			return nil, ErrMalformedFrame
		}
		ev.TaskID = frame.TaskID
		return ev, nil
	case "completion":
		if len(frame.Data) == 0 {
			return nil, ErrMalformedFrame
		}
		return CompletionEvent{TaskID: frame.TaskID, Result: frame.Data}, nil
	default:
		return nil, ErrMalformedFrame
	}
}
