package mosaic

import (
	"context"
	"fmt"
	"sync"
)

// historyCapacity bounds the event history ring. When a new record would
// exceed it, the oldest record is evicted first.
const historyCapacity = 100

// EventBus delivers named events to registered listeners under two
// contracts: Emit broadcasts fire-and-forget, Filter runs a sequential
// transformation pipeline. The bus owns the bounded history of past events;
// the listener registrations themselves live in the App's table, which is
// passed in at construction.
type EventBus struct {
	listeners *listenerTable
	logger    Logger

	historyMu sync.RWMutex
	history   []Event

	logEvents bool
	logLabel  string
}

func newEventBus(listeners *listenerTable, logger Logger) *EventBus {
	return &EventBus{
		listeners: listeners,
		logger:    logger,
		history:   make([]Event, 0, historyCapacity),
	}
}

// Emit broadcasts the event to every listener registered for name, in
// registration order, synchronously. Listener return values are discarded;
// a listener error or panic is logged and does not prevent the remaining
// listeners from running. The event is appended to the history.
func (b *EventBus) Emit(ctx context.Context, name string, data any, source string) {
	b.warnUnknown(name)
	b.record(name, source, data)

	for _, sub := range b.listeners.snapshot(name) {
		if _, err := b.invoke(ctx, sub, data); err != nil {
			b.logger.Error("event listener failed", "event", name, "error", err)
		}
	}
}

// Filter pushes data through the listeners registered for name, in
// registration order, each stage receiving the previous stage's output.
// A stage returning nil data substitutes the pre-pipeline original value.
// A stage returning an error is logged and skipped, the pipeline
// continuing with the value from before that stage. The final value is
// returned and recorded in the history under a derived name.
//
// The returned error is non-nil only when ctx is cancelled mid-pipeline;
// the accompanying value is the result of the stages that ran.
func (b *EventBus) Filter(ctx context.Context, name string, data any, source string) (any, error) {
	b.warnUnknown(name)

	current := data
	for _, sub := range b.listeners.snapshot(name) {
		if err := ctx.Err(); err != nil {
			return current, fmt.Errorf("filter %s interrupted: %w", name, err)
		}

		out, err := b.invoke(ctx, sub, current)
		if err != nil {
			b.logger.Error("filter stage failed", "event", name, "error", err)
			continue
		}
		if out == nil {
			current = data
			continue
		}
		current = out
	}

	b.record(name+filterSuffix, source, current)
	return current, nil
}

// invoke runs one listener, converting a panic into an error so a
// misbehaving listener cannot take down its siblings.
func (b *EventBus) invoke(ctx context.Context, sub *Subscription, data any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("listener panic: %v", r)
		}
	}()
	return sub.fn(ctx, data)
}

// warnUnknown logs event names outside the framework vocabulary. Emission
// is never blocked by an unrecognized name.
func (b *EventBus) warnUnknown(name string) {
	if _, ok := knownEventNames[name]; !ok {
		b.logger.Warn("unknown event name", "event", name)
	}
}

// record appends an event to the history ring, evicting the oldest entry
// beyond capacity, and mirrors it to the log when event logging is on.
func (b *EventBus) record(name, source string, data any) {
	event := NewEvent(name, source, data)

	b.historyMu.Lock()
	b.history = append(b.history, event)
	if len(b.history) > historyCapacity {
		b.history = b.history[1:]
	}
	b.historyMu.Unlock()

	if b.logEvents {
		b.logger.Info(b.logLabel, "event", name, "source", source)
	}
}

// History returns a copy of the recorded events, oldest first.
func (b *EventBus) History() []Event {
	b.historyMu.RLock()
	defer b.historyMu.RUnlock()

	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}

// ClearHistory drops all recorded events.
func (b *EventBus) ClearHistory() {
	b.historyMu.Lock()
	defer b.historyMu.Unlock()
	b.history = b.history[:0]
}

// setEventLogging configures the diagnostic mirror of recorded events.
func (b *EventBus) setEventLogging(enabled bool, label string) {
	b.logEvents = enabled
	b.logLabel = label
}
