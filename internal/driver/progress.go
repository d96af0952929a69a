package driver

import "time"

// Stage describes a per-file pipeline phase.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
	StageSema  Stage = "sema"
	StageLint  Stage = "lint"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
// Diagnostics is set on StatusDone/StatusCached.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
	Err         error
	Elapsed     time.Duration
}

// ProgressSink consumes progress events. Реализации должны быть безопасны
// для вызова из нескольких воркеров.
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

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
