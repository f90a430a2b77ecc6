package driver

import "time"

// Stage identifies a step of the pipeline.
type Stage string

const (
	// StageLoad reads files from disk.
	StageLoad Stage = "load"
	// StageParse lexes and parses, or reads from the disk cache.
	StageParse Stage = "parse"
	// StageVerify runs the tree checks.
	StageVerify Stage = "verify"
)

// Status indicates the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError marks a file that failed to load, has error diagnostics or
	// failed verification.
	StatusError Status = "error"
)

// Event reports progress for one file, or for the run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. It is called from worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
