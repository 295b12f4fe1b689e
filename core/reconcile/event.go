package reconcile

import "sync"

// EventKind is the vocabulary of sync events.
type EventKind string

const (
	EventUploaded       EventKind = "uploaded"
	EventDownloaded     EventKind = "downloaded"
	EventSkipped        EventKind = "skipped"
	EventDeleted        EventKind = "deleted"
	EventDryRunUpload   EventKind = "dryrun_upload"
	EventDryRunDownload EventKind = "dryrun_download"
	EventDryRunDelete   EventKind = "dryrun_delete"
	EventError          EventKind = "error"
)

// Event reports the outcome of a single action.
type Event struct {
	Kind EventKind `json:"kind"`
	// Key is the relative key the event refers to.
	Key string `json:"key,omitempty"`
	// Detail carries the failure message of an error event.
	Detail string `json:"detail,omitempty"`
}

// Sink receives events. Executor serializes calls, so implementations
// only need locking if they are shared between passes.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Tee fans events out to every sink in order. Nil sinks are ignored.
func Tee(sinks ...Sink) Sink {
	var out []Sink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return SinkFunc(func(e Event) {
		for _, s := range out {
			s.Emit(e)
		}
	})
}

type lockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func (l *lockedSink) Emit(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.Emit(e)
}

// Serialize wraps s so concurrent Emit calls are delivered one at a time.
func Serialize(s Sink) Sink {
	if s == nil {
		s = Discard
	}
	if _, ok := s.(*lockedSink); ok {
		return s
	}
	return &lockedSink{sink: s}
}

// Collector records events in arrival order. It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends e.
func (c *Collector) Emit(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the recorded events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Count returns how many events of kind were recorded.
func (c *Collector) Count(kind EventKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
