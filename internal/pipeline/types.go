// Package pipeline defines the progress events the documentation driver
// emits while working through a set of files.
package pipeline

import "time"

// Stage describes a high-level phase of documenting one file.
type Stage string

const (
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageDocument is the documentation-rewrite stage.
	StageDocument Stage = "document"
	// StageWrite is the output-writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently processed.
	StatusWorking Status = "working"
	// StatusCached indicates the file was served from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file is done.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
