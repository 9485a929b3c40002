package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/turkeybot/internal/report"
)

// RecordingReporter keeps every event it receives
type RecordingReporter struct {
	mu     sync.Mutex
	events []report.Event
}

var _ report.Reporter = (*RecordingReporter)(nil)

// NewRecordingReporter creates an empty RecordingReporter
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

// Report records the event
func (r *RecordingReporter) Report(_ context.Context, event report.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *RecordingReporter) Events() []report.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report.Event(nil), r.events...)
}

// Types returns the type of every recorded event in order
func (r *RecordingReporter) Types() []report.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]report.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// OfType returns the recorded events of one type
func (r *RecordingReporter) OfType(t report.EventType) []report.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
