package indexer

import (
	"log/slog"
	"sync"
	"time"
)

// eventDebouncer coalesces rapid watcher events to prevent index thrashing.
// Events for the same path within the window are merged:
//   - CREATE + MODIFY = CREATE (file is still new)
//   - CREATE + DELETE = nothing (file never really existed)
//   - MODIFY + DELETE = DELETE (file is gone)
//   - DELETE + CREATE = MODIFY (file was replaced)
//
// Either way the store converges: creates and modifies both upsert by path.
type eventDebouncer struct {
	window  time.Duration
	pending map[string]*pendingEvent
	mu      sync.Mutex
	output  chan []FileEvent
	timer   *time.Timer
	stopped bool
}

type pendingEvent struct {
	event   FileEvent
	firstOp Operation
}

func newEventDebouncer(window time.Duration) *eventDebouncer {
	return &eventDebouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
		output:  make(chan []FileEvent, 16),
	}
}

// Add adds an event to be debounced, coalescing with any pending event for
// the same path.
func (d *eventDebouncer) Add(event FileEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if existing, ok := d.pending[event.Path]; ok {
		coalesced := coalesce(existing, event)
		if coalesced == nil {
			delete(d.pending, event.Path)
		} else {
			existing.event = *coalesced
		}
	} else {
		d.pending[event.Path] = &pendingEvent{event: event, firstOp: event.Operation}
	}

	d.scheduleFlush()
}

// coalesce merges a new event into a pending one.
// Returns nil if the events cancel each other out.
func coalesce(existing *pendingEvent, next FileEvent) *FileEvent {
	switch existing.firstOp {
	case OpCreate:
		switch next.Operation {
		case OpModify:
			return &existing.event
		case OpDelete:
			return nil
		}
	case OpDelete:
		if next.Operation == OpCreate {
			replaced := next
			replaced.Operation = OpModify
			return &replaced
		}
	}
	return &next
}

// scheduleFlush schedules a flush after the debounce window.
// Callers must hold d.mu.
func (d *eventDebouncer) scheduleFlush() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// flush emits all pending events as one batch.
func (d *eventDebouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || len(d.pending) == 0 {
		return
	}

	events := make([]FileEvent, 0, len(d.pending))
	for _, pe := range d.pending {
		events = append(events, pe.event)
	}
	d.pending = make(map[string]*pendingEvent)

	select {
	case d.output <- events:
	default:
		slog.Warn("debouncer output full, dropping batch",
			slog.Int("batch_size", len(events)))
	}
}

// Output returns the channel of debounced event batches.
func (d *eventDebouncer) Output() <-chan []FileEvent {
	return d.output
}

// Stop stops the debouncer and closes the output channel.
// Safe to call multiple times.
func (d *eventDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
