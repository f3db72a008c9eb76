package dnd

import (
	"image/color"
	"log"
)

// State is the hover state of a DropTarget
type State int

const (
	Idle State = iota
	Hovering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	default:
		return "unknown"
	}
}

// Tint is the overlay applied to the drop target's image
type Tint int

const (
	TintNeutral Tint = iota
	TintActive
)

var (
	colorNeutral = color.NRGBA{0xE5, 0xE4, 0xE2, 0xFF} // Platinum
	colorActive  = color.NRGBA{0x00, 0xFF, 0x00, 0xFF} // Green
)

// Color returns the overlay colour for the tint
func (t Tint) Color() color.Color {
	if t == TintActive {
		return colorActive
	}
	return colorNeutral
}

func (t Tint) String() string {
	if t == TintActive {
		return "active"
	}
	return "neutral"
}

// Snapshot is the observable state of a DropTarget
type Snapshot struct {
	Address string
	State   State
	Tint    Tint
}

// DropTarget holds the view-local state of a drop target and implements
// Target. It accepts text/plain transfers and replaces its address with
// the first text item of each successful drop.
//
// DropTarget is not safe for concurrent use; all events must arrive on
// the UI goroutine.
type DropTarget struct {
	address string
	state   State
	tint    Tint

	subscribers map[int]func(Snapshot)
	nextID      int
}

// NewDropTarget creates an idle target showing address
func NewDropTarget(address string) *DropTarget {
	return &DropTarget{
		address:     address,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state
func (d *DropTarget) Snapshot() Snapshot {
	return Snapshot{Address: d.address, State: d.state, Tint: d.tint}
}

// Address returns the currently displayed address
func (d *DropTarget) Address() string { return d.address }

// State returns the hover state
func (d *DropTarget) State() State { return d.state }

// Tint returns the overlay tint
func (d *DropTarget) Tint() Tint { return d.tint }

// Subscribe registers fn to be called after every state change.
// The returned func removes the subscription.
func (d *DropTarget) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := d.nextID
	d.nextID++
	d.subscribers[id] = fn
	return func() { delete(d.subscribers, id) }
}

// Accepts reports whether the transfer advertises plain text
func (d *DropTarget) Accepts(desc Description) bool {
	return desc.HasMimeType(MimeTextPlain)
}

// Handle applies ev to the state machine
func (d *DropTarget) Handle(ev Event) bool {
	switch e := ev.(type) {
	case EnteredEvent:
		if !d.Accepts(e.Transfer.Description) {
			return false
		}
		d.set(d.address, Hovering, TintActive)
		return false

	case DroppedEvent:
		return d.drop(e.Transfer)

	case ExitedEvent, EndedEvent:
		d.set(d.address, Idle, TintNeutral)
		return false

	default:
		return false
	}
}

// drop replaces the address with the transferred text. The tint is left
// as is; the host's EndedEvent resets it.
func (d *DropTarget) drop(t TransferData) bool {
	if !d.Accepts(t.Description) {
		return false
	}
	text, ok := t.FirstText()
	if !ok {
		log.Println("Drop declined: transfer has no items")
		return false
	}
	d.set(text, d.state, d.tint)
	return true
}

func (d *DropTarget) set(address string, state State, tint Tint) {
	if address == d.address && state == d.state && tint == d.tint {
		return
	}
	d.address, d.state, d.tint = address, state, tint

	snap := d.Snapshot()
	for _, fn := range d.subscribers {
		fn(snap)
	}
}
