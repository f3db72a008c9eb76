package app

import (
	"context"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"dragdrop/internal/dnd"
	"dragdrop/internal/imageload"
)

const (
	defaultURL = "https://example.com/default.png"
	photoURL   = "https://example.com/photo.jpg"
)

// startHoveringDrag registers a target covering the whole canvas and
// drags a plain text payload over it
func startHoveringDrag(t *testing.T, host *dnd.Host) (*dnd.DropTarget, *dnd.Session) {
	t.Helper()
	target := dnd.NewDropTarget(defaultURL)
	host.Register(target, func(fyne.Position) bool { return true })

	session, err := host.StartTransfer(dnd.NewPlainText("image uri", photoURL))
	require.NoError(t, err)
	session.Move(fyne.NewPos(1, 1))
	require.Equal(t, dnd.Hovering, target.State())
	return target, session
}

func TestStoppingCancelsRunningDrag(t *testing.T) {
	a := &App{fyneApp: test.NewTempApp(t), host: dnd.NewHost()}
	a.initLifecycle()
	target, session := startHoveringDrag(t, a.host)

	lifecycle, ok := a.fyneApp.Lifecycle().(interface{ OnStopped() func() })
	require.True(t, ok)
	stopped := lifecycle.OnStopped()
	require.NotNil(t, stopped)
	stopped()

	require.Nil(t, a.host.Active())
	require.True(t, session.Finished())
	require.False(t, session.Dropped())
	require.Equal(t, dnd.Idle, target.State())
	require.Equal(t, dnd.TintNeutral, target.Tint())
	require.Equal(t, defaultURL, target.Address())
}

func TestShutdownLeavesDragToLifecycle(t *testing.T) {
	cache, err := imageload.OpenCache(filepath.Join(t.TempDir(), "images.db"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{host: dnd.NewHost(), cache: cache, ctx: ctx, cancel: cancel, running: true}
	target, session := startHoveringDrag(t, a.host)

	a.shutdown()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.False(t, a.running)
	require.Same(t, session, a.host.Active())
	require.Equal(t, dnd.Hovering, target.State())

	_, _, err = cache.Get(context.Background(), photoURL)
	require.Error(t, err)

	// a second shutdown is a no-op
	a.shutdown()
}
