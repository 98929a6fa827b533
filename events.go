package mosaic

import (
	"sort"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// Event is an alias for the CloudEvents event type. Every record in the
// framework's event history is a CloudEvent: the event name is the CloudEvent
// type, the emitting component is the source, and the payload is the data.
type Event = cloudevents.Event

// Event type constants for framework lifecycle events.
// Following CloudEvents specification reverse domain notation.
// This is the closed vocabulary listeners subscribe to by exact string match;
// emitting a name outside it is permitted but logged as a warning.
const (
	// Module lifecycle events
	EventModuleRegistered   = "com.mosaic.module.registered"
	EventModuleUnregistered = "com.mosaic.module.unregistered"
	EventModuleLoaded       = "com.mosaic.module.loaded"
	EventModuleError        = "com.mosaic.module.error"

	// Route lifecycle events
	EventRouteRegistered = "com.mosaic.route.registered"
	EventRouteChanged    = "com.mosaic.route.changed"
	EventRouteError      = "com.mosaic.route.error"
	EventRouteNotFound   = "com.mosaic.route.notfound"

	// Framework state events
	EventLoadingChanged  = "com.mosaic.loading.changed"
	EventError           = "com.mosaic.error"
	EventPluginInstalled = "com.mosaic.plugin.installed"
	EventReady           = "com.mosaic.app.ready"
	EventDestroyed       = "com.mosaic.app.destroyed"

	// Container health events
	EventContainerError    = "com.mosaic.container.error"
	EventContainerRestored = "com.mosaic.container.restored"
)

// knownEventNames is the static registry of framework-defined event names.
var knownEventNames = map[string]struct{}{
	EventModuleRegistered:   {},
	EventModuleUnregistered: {},
	EventModuleLoaded:       {},
	EventModuleError:        {},
	EventRouteRegistered:    {},
	EventRouteChanged:       {},
	EventRouteError:         {},
	EventRouteNotFound:      {},
	EventLoadingChanged:     {},
	EventError:              {},
	EventPluginInstalled:    {},
	EventReady:              {},
	EventDestroyed:          {},
	EventContainerError:     {},
	EventContainerRestored:  {},
}

// KnownEvents returns the framework's event name vocabulary, sorted.
func KnownEvents() []string {
	names := make([]string, 0, len(knownEventNames))
	for name := range knownEventNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// filterSuffix derives the history record name for filter pipeline results.
const filterSuffix = ".filtered"

// NewEvent creates a CloudEvent with the given type, source and payload.
// This is the constructor used for every record in the event history.
func NewEvent(eventType, source string, data any) Event {
	event := cloudevents.NewEvent()
	event.SetID(newEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// newEventID generates a time-ordered unique identifier using UUIDv7,
// falling back to v4 if v7 generation fails.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
