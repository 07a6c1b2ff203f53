// Package telemetry provides frame timing, lifecycle counters and CSV output for the
// glyph field.
package telemetry

// EventType identifies animator lifecycle events.
type EventType uint8

const (
	EventRebuild EventType = iota
	EventPause
	EventResume
	EventMotionStop
)

// String returns the event name used in logs.
func (e EventType) String() string {
	switch e {
	case EventRebuild:
		return "rebuild"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventMotionStop:
		return "motion_stop"
	default:
		return "unknown"
	}
}
