package dnd

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/require"
)

// rect hit-tests a box at (x, y) of size (w, h)
func rect(x, y, w, h float32) HitTest {
	return func(p fyne.Position) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
	}
}

// recorder captures the events a target receives
type recorder struct {
	accept bool
	events []Event
}

func (r *recorder) Accepts(Description) bool { return r.accept }

func (r *recorder) Handle(ev Event) bool {
	r.events = append(r.events, ev)
	_, isDrop := ev.(DroppedEvent)
	return isDrop
}

var (
	inside  = fyne.NewPos(10, 110)
	outside = fyne.NewPos(10, 10)
)

func TestHostScenario(t *testing.T) {
	t.Parallel()

	h := NewHost()
	target := NewDropTarget(defaultAddress)
	h.Register(target, rect(0, 100, 100, 100))

	s, err := h.StartTransfer(NewPlainText("image uri", photoAddress))
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Same(t, s, h.Active())
	text, ok := s.Transfer().FirstText()
	require.True(t, ok)
	require.Equal(t, photoAddress, text)
	require.Equal(t, "image uri", s.Transfer().Description.Label)

	s.Move(outside)
	require.Equal(t, Idle, target.State())

	s.Move(inside)
	require.Equal(t, TintActive, target.Tint())

	// Capture the state between drop and end
	var atDrop Snapshot
	cancel := target.Subscribe(func(snap Snapshot) {
		if snap.Address == photoAddress && atDrop.Address == "" {
			atDrop = snap
		}
	})
	defer cancel()

	require.True(t, s.Release(inside))
	require.Equal(t, TintActive, atDrop.Tint)
	require.Equal(t, photoAddress, target.Address())
	require.Equal(t, TintNeutral, target.Tint())
	require.Nil(t, h.Active())
	require.True(t, s.Finished())
	require.True(t, s.Dropped())
}

func TestHostEventOrder(t *testing.T) {
	t.Parallel()

	h := NewHost()
	r := &recorder{accept: true}
	h.Register(r, rect(0, 100, 100, 100))

	data := NewPlainText("image uri", photoAddress)
	s, err := h.StartTransfer(data)
	require.NoError(t, err)

	s.Move(inside)
	s.Move(fyne.NewPos(20, 120))
	s.Move(outside)
	s.Move(inside)
	require.True(t, s.Release(inside))
	require.True(t, s.Release(inside))

	require.Equal(t, []Event{
		StartedEvent{Transfer: data},
		EnteredEvent{Transfer: data},
		MovedEvent{Transfer: data, Position: fyne.NewPos(20, 120)},
		ExitedEvent{},
		EnteredEvent{Transfer: data},
		MovedEvent{Transfer: data, Position: inside},
		DroppedEvent{Transfer: data},
		EndedEvent{Dropped: true},
	}, r.events)
}

func TestHostRejectingTargetGetsNothing(t *testing.T) {
	t.Parallel()

	h := NewHost()
	r := &recorder{accept: false}
	h.Register(r, rect(0, 100, 100, 100))

	s, err := h.StartTransfer(NewPlainText("image uri", photoAddress))
	require.NoError(t, err)
	s.Move(inside)
	require.False(t, s.Release(inside))
	require.Empty(t, r.events)
}

func TestHostNonTextNeverHovers(t *testing.T) {
	t.Parallel()

	h := NewHost()
	target := NewDropTarget(defaultAddress)
	var changes int
	target.Subscribe(func(Snapshot) { changes++ })
	h.Register(target, rect(0, 100, 100, 100))

	s, err := h.StartTransfer(TransferData{
		Description: Description{Label: "file", MimeTypes: []string{"application/octet-stream"}},
		Items:       []Item{{Text: photoAddress}},
	})
	require.NoError(t, err)
	s.Move(inside)
	require.Equal(t, Idle, target.State())
	require.False(t, s.Release(inside))
	require.Equal(t, TintNeutral, target.Tint())
	require.Equal(t, defaultAddress, target.Address())
	require.Zero(t, changes)
}

func TestHostReleaseElsewhere(t *testing.T) {
	t.Parallel()

	h := NewHost()
	target := NewDropTarget(defaultAddress)
	h.Register(target, rect(0, 100, 100, 100))

	s, err := h.StartTransfer(NewPlainText("image uri", photoAddress))
	require.NoError(t, err)
	s.Move(inside)
	require.Equal(t, TintActive, target.Tint())

	require.False(t, s.Release(outside))
	require.Equal(t, TintNeutral, target.Tint())
	require.Equal(t, defaultAddress, target.Address())
}

func TestHostCancel(t *testing.T) {
	t.Parallel()

	h := NewHost()
	r := &recorder{accept: true}
	h.Register(r, rect(0, 100, 100, 100))

	s, err := h.StartTransfer(NewPlainText("image uri", photoAddress))
	require.NoError(t, err)
	s.Move(inside)
	s.Cancel()
	s.Cancel()

	require.IsType(t, ExitedEvent{}, r.events[len(r.events)-2])
	require.Equal(t, EndedEvent{Dropped: false}, r.events[len(r.events)-1])
	require.Nil(t, h.Active())
}

func TestHostStartErrors(t *testing.T) {
	t.Parallel()

	h := NewHost()
	_, err := h.StartTransfer(TransferData{})
	require.ErrorIs(t, err, ErrEmptyTransfer)

	s, err := h.StartTransfer(NewPlainText("a", "b"))
	require.NoError(t, err)
	_, err = h.StartTransfer(NewPlainText("a", "b"))
	require.ErrorIs(t, err, ErrSessionActive)

	s.Cancel()
	_, err = h.StartTransfer(NewPlainText("a", "b"))
	require.NoError(t, err)
}

func TestHostUnregister(t *testing.T) {
	t.Parallel()

	h := NewHost()
	r := &recorder{accept: true}
	unregister := h.Register(r, rect(0, 100, 100, 100))
	unregister()

	s, err := h.StartTransfer(NewPlainText("image uri", photoAddress))
	require.NoError(t, err)
	s.Release(inside)
	require.Empty(t, r.events)
}
