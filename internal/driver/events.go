package driver

import "time"

// Stage describes a step of processing one document.
type Stage string

const (
	StageLoad  Stage = "load"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the document is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the document is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates a tree was built.
	StatusDone Status = "done"
	// StatusError indicates load failure, a fatal diagnostic or recoverable errors.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Cached  bool
}

// ProgressSink consumes progress events. ParseDir calls OnEvent from
// worker goroutines concurrently.
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
