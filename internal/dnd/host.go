package dnd

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

var (
	ErrSessionActive = errors.New("a drag session is already running")
	ErrEmptyTransfer = errors.New("transfer advertises no MIME types")
)

// HitTest reports whether an absolute canvas position lies inside a target
type HitTest func(pos fyne.Position) bool

type registration struct {
	id       int
	target   Target
	contains HitTest
}

// Host brokers drag sessions between a source and the registered targets.
// It plays the role of the windowing system's drag-and-drop manager:
// candidate targets are chosen when a session starts, hit-tested while
// the pointer moves, and always told when the session ends.
//
// Host is not safe for concurrent use.
type Host struct {
	targets []*registration
	nextID  int
	active  *Session
}

// NewHost creates a host with no registered targets
func NewHost() *Host {
	return &Host{}
}

// Register adds a drop target. contains is evaluated against absolute
// canvas positions. The returned func unregisters the target.
func (h *Host) Register(target Target, contains HitTest) (unregister func()) {
	reg := &registration{id: h.nextID, target: target, contains: contains}
	h.nextID++
	h.targets = append(h.targets, reg)

	return func() {
		for i, r := range h.targets {
			if r.id == reg.id {
				h.targets = append(h.targets[:i], h.targets[i+1:]...)
				return
			}
		}
	}
}

// Active returns the running session, or nil
func (h *Host) Active() *Session {
	return h.active
}

// StartTransfer begins a drag session carrying data. Every registered
// target whose Accepts returns true becomes a candidate and receives a
// StartedEvent.
func (h *Host) StartTransfer(data TransferData) (*Session, error) {
	if h.active != nil {
		return nil, ErrSessionActive
	}
	if len(data.Description.MimeTypes) == 0 {
		return nil, ErrEmptyTransfer
	}

	s := &Session{
		ID:   uuid.NewString(),
		host: h,
		data: data,
	}
	for _, r := range h.targets {
		if r.target.Accepts(data.Description) {
			s.candidates = append(s.candidates, r)
		}
	}
	h.active = s

	log.Printf("Drag session %s started: %q %v (%d candidate targets)",
		s.ID, data.Description.Label, data.Description.MimeTypes, len(s.candidates))

	for _, r := range s.candidates {
		r.target.Handle(StartedEvent{Transfer: data})
	}
	return s, nil
}

// Session is a single running transfer
type Session struct {
	ID string

	host       *Host
	data       TransferData
	candidates []*registration
	hovered    *registration
	finished   bool
	dropped    bool
}

// Transfer returns the payload being dragged
func (s *Session) Transfer() TransferData {
	return s.data
}

// Finished reports whether the session has been released or cancelled
func (s *Session) Finished() bool {
	return s.finished
}

// Dropped reports whether a target consumed the drop
func (s *Session) Dropped() bool {
	return s.dropped
}

// Move updates the pointer position, delivering Exited to a target the
// pointer left and Entered to the target it is now over.
func (s *Session) Move(pos fyne.Position) {
	if s.finished {
		return
	}

	var over *registration
	for _, r := range s.candidates {
		if r.contains(pos) {
			over = r
			break
		}
	}

	if over != s.hovered {
		if s.hovered != nil {
			s.hovered.target.Handle(ExitedEvent{})
		}
		s.hovered = over
		if over != nil {
			over.target.Handle(EnteredEvent{Transfer: s.data})
		}
		return
	}
	if over != nil {
		over.target.Handle(MovedEvent{Transfer: s.data, Position: pos})
	}
}

// Release ends the session at pos. The hovered target, if any, receives
// DroppedEvent; then every candidate receives EndedEvent. It returns
// whether the drop was consumed. Calling Release again is a no-op.
func (s *Session) Release(pos fyne.Position) bool {
	if s.finished {
		return s.dropped
	}
	s.Move(pos)

	if s.hovered != nil {
		s.dropped = s.hovered.target.Handle(DroppedEvent{Transfer: s.data})
	}
	s.end()

	log.Printf("Drag session %s released (dropped: %t)", s.ID, s.dropped)
	return s.dropped
}

// Cancel aborts the session without dropping
func (s *Session) Cancel() {
	if s.finished {
		return
	}
	if s.hovered != nil {
		s.hovered.target.Handle(ExitedEvent{})
	}
	s.end()

	log.Printf("Drag session %s cancelled", s.ID)
}

func (s *Session) end() {
	s.finished = true
	s.hovered = nil
	if s.host.active == s {
		s.host.active = nil
	}
	for _, r := range s.candidates {
		r.target.Handle(EndedEvent{Dropped: s.dropped})
	}
}
