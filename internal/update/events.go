package update

// EventKind identifies a notification emitted by the Manager.
type EventKind int

const (
	// EventCheckStarted fires when a check begins.
	EventCheckStarted EventKind = iota
	// EventUpdateAvailable fires when a newer version was found; the event
	// carries the VersionInfo.
	EventUpdateAvailable
	// EventNoUpdateAvailable fires when the running version is current.
	EventNoUpdateAvailable
	// EventCheckFailed fires when the check could not complete; the event
	// carries the error message.
	EventCheckFailed
	// EventCheckFinished fires after the outcome event, once per check.
	EventCheckFinished
)

// String returns a stable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCheckStarted:
		return "check_started"
	case EventUpdateAvailable:
		return "update_available"
	case EventNoUpdateAvailable:
		return "no_update_available"
	case EventCheckFailed:
		return "check_failed"
	case EventCheckFinished:
		return "check_finished"
	default:
		return "unknown"
	}
}

// Event is a notification delivered on the Manager's events channel.
// Version is set for EventUpdateAvailable, Message for EventCheckFailed.
type Event struct {
	Version *VersionInfo
	Message string
	Kind    EventKind
}
