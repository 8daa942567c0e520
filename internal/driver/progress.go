package driver

// Stage is a step in a file's life during Run.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLexing
	StageChecking
	StageFixing
	StageDone
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageLexing:
		return "lexing"
	case StageChecking:
		return "checking"
	case StageFixing:
		return "fixing"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	}
	return "unknown"
}

// Event reports progress on one file.
type Event struct {
	Path        string
	Stage       Stage
	Pass        int
	Diagnostics int
	Fixes       int
	Err         error
}

// Sink receives progress events. Run calls it from worker goroutines, so
// implementations must be safe for concurrent use.
type Sink interface {
	Event(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Event(ev Event) { f(ev) }

func emit(s Sink, ev Event) {
	if s != nil {
		s.Event(ev)
	}
}

// ChannelSink forwards events to Ch. The sender blocks when Ch is full.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Event(ev Event) { s.Ch <- ev }
