package client

import (
	"encoding/json"
	"sync"
)

// Phase is the lifecycle state of the tracked job.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseConnecting
	PhaseStreaming
	PhaseCompleted
	PhaseFailed
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseConnecting:
		return "connecting"
	case PhaseStreaming:
		return "streaming"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (p Phase) terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed || p == PhaseCancelled
}

func (p Phase) active() bool {
	return p == PhasePending || p == PhaseConnecting || p == PhaseStreaming
}

// JobState is the tracked job as the presentation layer sees it. It is
// mutated only through Apply.
type JobState struct {
	Phase               Phase
	TaskID              string
	EstimatedMinutes    float64
	TotalBatches        int
	CurrentBatch        int
	Processed           int
	Total               int
	ProgressPercentage  float64
	ThroughputPerMinute float64
	Message             string
	CompletedBatches    []int
	Result              json.RawMessage
	Err                 string
}

// Apply is the pure transition function of the job lifecycle. It returns
// the next state and whether the channel for the job should be closed
// now. Events for a task other than the tracked one, and events arriving
// after a terminal phase, produce no state change.
func Apply(job JobState, ev Event) (JobState, bool) {
	if accepted, ok := ev.(JobAccepted); ok {
		if job.Phase.active() {
			return job, false
		}
		return JobState{
			Phase:            PhasePending,
			TaskID:           accepted.TaskID,
			EstimatedMinutes: accepted.EstimatedMinutes,
			TotalBatches:     accepted.TotalBatches,
		}, false
	}

	if ev.eventTaskID() != job.TaskID || job.Phase == PhaseIdle || job.Phase.terminal() {
		return job, false
	}

	switch ev := ev.(type) {
	case DialStarted:
		if job.Phase == PhasePending {
			job.Phase = PhaseConnecting
		}
		return job, false

	case ChannelOpened:
		job.Phase = PhaseStreaming
		return job, false

	case ProgressEvent:
		if job.Phase != PhaseStreaming {
			return job, false
		}
		if ev.CurrentBatch > 0 {
			job.CurrentBatch = ev.CurrentBatch
		}
		if ev.TotalBatches > 0 {
			job.TotalBatches = ev.TotalBatches
		}
		if ev.Processed > 0 {
			job.Processed = ev.Processed
		}
		if ev.Total > 0 {
			job.Total = ev.Total
		}
		if ev.ProgressPercentage > 0 {
			job.ProgressPercentage = ev.ProgressPercentage
		}
		if ev.ThroughputPerMinute > 0 {
			job.ThroughputPerMinute = ev.ThroughputPerMinute
		}
		if ev.Message != "" {
			job.Message = ev.Message
		}
		if ev.Status == ProgressBatchComplete {
			job.CompletedBatches = append(job.CompletedBatches, ev.CurrentBatch)
		}
		return job, false

	case CompletionEvent:
		job.Phase = PhaseCompleted
		job.Result = ev.Result
		return job, true

	case ChannelError:
		next := JobState{Phase: PhaseFailed, TaskID: job.TaskID}
		if ev.Err != nil {
			next.Err = ev.Err.Error()
		}
		return next, true

	case ChannelClosed:
		// Closed without a completion event is a failure.
		return JobState{Phase: PhaseFailed, TaskID: job.TaskID, Err: "channel closed before completion"}, false

	case CancelRequested:
		return JobState{Phase: PhaseCancelled, TaskID: job.TaskID}, true

	default:
		return job, false
	}
}

// Tracker owns the lifecycle of the background jobs started by this
// client. Every accepted job gets its own state keyed by task ID, so a
// second upload while an earlier job is still running is tracked as an
// independent workflow; the earlier job keeps streaming in the
// background. Events are fed through Apply against the state of their
// own task, and a job's channel is torn down on its completion,
// failure, or cancellation. The presentation layer reads Snapshot (the
// most recently started job) or Job, and calls Start, AttachView, and
// Cancel; it never mutates state directly.
type Tracker struct {
	registry *Registry
	onChange func(JobState)

	mu      sync.Mutex
	jobs    map[string]JobState
	current string
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func(JobState)) TrackerOption {
	return func(t *Tracker) { t.onChange = fn }
}

// NewTracker constructs a Tracker around the given connection registry.
func NewTracker(registry *Registry, opts ...TrackerOption) *Tracker {
	t := &Tracker{registry: registry, jobs: make(map[string]JobState)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns the state of the most recently started job, or a
// zero JobState when nothing is tracked.
func (t *Tracker) Snapshot() JobState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobs[t.current]
}

// Job returns the state of one tracked job by task ID.
func (t *Tracker) Job(taskID string) (JobState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job, ok := t.jobs[taskID]
	return job, ok
}

// Jobs returns the states of every tracked job.
func (t *Tracker) Jobs() []JobState {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]JobState, 0, len(t.jobs))
	for _, job := range t.jobs {
		out = append(out, job)
	}
	return out
}

// Start begins tracking an accepted job: it records the metadata and
// immediately opens the push channel in the background, without waiting
// for any progress view to be opened.
func (t *Tracker) Start(accepted JobAccepted, channelURL string) {
	t.apply(accepted)
	t.apply(DialStarted{TaskID: accepted.TaskID})

	go func() {
		if err := t.registry.Attach(accepted.TaskID, channelURL, t.apply); err != nil {
			t.apply(ChannelError{TaskID: accepted.TaskID, Err: err})
		}
	}()
}

// AttachView attaches another progress view to the most recently
// started job. The existing channel is reused; no second connection is
// opened.
func (t *Tracker) AttachView() {
	t.mu.Lock()
	taskID := t.current
	t.mu.Unlock()
	if taskID == "" {
		return
	}
	t.registry.Ref(taskID)
}

// DetachView releases a previously attached view. The channel stays open
// so tracking continues in the background.
func (t *Tracker) DetachView() {
	t.mu.Lock()
	taskID := t.current
	t.mu.Unlock()
	if taskID != "" {
		t.registry.Unref(taskID)
	}
}

// Cancel is the user-initiated reset of the most recently started job:
// it closes that job's channel best-effort and clears its state
// synchronously. Other tracked jobs keep streaming; events still in
// flight for the cancelled task are ignored on arrival.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	taskID := t.current
	wasActive := t.jobs[taskID].Phase.active()
	delete(t.jobs, taskID)
	t.current = ""
	t.mu.Unlock()

	if wasActive && taskID != "" {
		t.registry.Close(taskID)
	}
	if t.onChange != nil {
		t.onChange(JobState{})
	}
}

func (t *Tracker) apply(ev Event) {
	taskID := ev.eventTaskID()

	t.mu.Lock()
	prev, tracked := t.jobs[taskID]
	next, closeNow := Apply(prev, ev)
	if !tracked && next.Phase == PhaseIdle {
		// Event for a task that was never tracked, or was cancelled.
		t.mu.Unlock()
		return
	}
	t.jobs[taskID] = next
	if _, accepted := ev.(JobAccepted); accepted {
		t.current = taskID
	}
	t.mu.Unlock()

	if closeNow && taskID != "" {
		t.registry.Close(taskID)
	}
	if t.onChange != nil {
		t.onChange(next)
	}
}
