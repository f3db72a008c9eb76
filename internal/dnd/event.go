package dnd

import "fyne.io/fyne/v2"

// Event is one of the notifications a Host delivers to a Target.
// The concrete types are StartedEvent, EnteredEvent, MovedEvent,
// DroppedEvent, ExitedEvent and EndedEvent.
type Event interface {
	ImplementsEvent()
}

// StartedEvent is sent to every candidate target when a session begins
type StartedEvent struct {
	Transfer TransferData
}

// EnteredEvent is sent when the pointer enters a target's bounds
type EnteredEvent struct {
	Transfer TransferData
}

// MovedEvent is sent while the pointer moves inside a target's bounds
type MovedEvent struct {
	Transfer TransferData
	Position fyne.Position
}

// DroppedEvent is sent to the hovered target when the pointer is released.
// The target's Handle result tells the host whether the drop was consumed.
type DroppedEvent struct {
	Transfer TransferData
}

// ExitedEvent is sent when the pointer leaves a target's bounds without dropping
type ExitedEvent struct{}

// EndedEvent is sent to every candidate target once the session terminates
type EndedEvent struct {
	// Dropped is true if some target consumed the drop
	Dropped bool
}

func (StartedEvent) ImplementsEvent() {}
func (EnteredEvent) ImplementsEvent() {}
func (MovedEvent) ImplementsEvent() {}
func (DroppedEvent) ImplementsEvent() {}
func (ExitedEvent) ImplementsEvent() {}
func (EndedEvent) ImplementsEvent() {}

// Target receives drag-and-drop events from a Host
type Target interface {
	// Accepts is queried once when a session starts. Targets that
	// return false receive no events for that session.
	Accepts(desc Description) bool

	// Handle processes an event. The return value is only meaningful
	// for DroppedEvent, where true means the drop was consumed.
	Handle(ev Event) bool
}
