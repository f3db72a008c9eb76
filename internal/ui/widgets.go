package ui

import (
	"context"
	"image"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"dragdrop/internal/assets"
	"dragdrop/internal/dnd"
	"dragdrop/internal/imageload"
)

var (
	colorBg      = color.RGBA{32, 33, 35, 255}    // Dark background
	colorGray    = color.RGBA{156, 163, 175, 255} // Caption text
	colorOutline = color.RGBA{88, 140, 236, 255}  // Drag-in-progress outline
)

const (
	// imageWidth and imageHeight are the minimum rendered image size
	imageWidth  = 300
	imageHeight = 200

	// dragSlop is how far the pointer may move before a pending
	// long-press is abandoned
	dragSlop = 8

	// Static descriptions shown under each image
	sourceDescription = "Dragged Image"
	targetDescription = "Dropped Image"
)

// ImageLoader resolves an address to a decoded image asynchronously
type ImageLoader interface {
	Load(ctx context.Context, url string, done func(image.Image, error))
}

var _ ImageLoader = (*imageload.Loader)(nil)

func newTitle(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.Alignment = fyne.TextAlignCenter
	l.TextStyle = fyne.TextStyle{Bold: true}
	return l
}

func newImage() *canvas.Image {
	img := canvas.NewImageFromImage(assets.Placeholder())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(imageWidth, imageHeight))
	return img
}

// DragSourceImage renders the image at a fixed address and starts a
// text/plain transfer of that address on long-press.
type DragSourceImage struct {
	widget.BaseWidget

	url       string
	host      *dnd.Host
	longPress time.Duration

	image   *canvas.Image
	outline *canvas.Rectangle
	title   *widget.Label

	// afterFunc schedules the long-press timer
	afterFunc func(time.Duration, func()) *time.Timer

	pressed  bool
	pressGen int
	pressPos fyne.Position
	lastPos  fyne.Position
	session  *dnd.Session
}

// NewDragSourceImage creates the drag source for url
func NewDragSourceImage(url string, host *dnd.Host, longPress time.Duration) *DragSourceImage {
	s := &DragSourceImage{
		url:       url,
		host:      host,
		longPress: longPress,
		image:     newImage(),
		outline:   canvas.NewRectangle(color.Transparent),
		title:     newTitle(sourceDescription),
		afterFunc: time.AfterFunc,
	}
	s.outline.StrokeColor = color.Transparent
	s.outline.StrokeWidth = 2
	s.outline.CornerRadius = 4
	s.ExtendBaseWidget(s)
	return s
}

// URL returns the address carried by transfers from this source
func (s *DragSourceImage) URL() string { return s.url }

// Description returns the static description shown under the image
func (s *DragSourceImage) Description() string { return sourceDescription }

// Session returns the transfer this source started, if still running
func (s *DragSourceImage) Session() *dnd.Session { return s.session }

// Load fetches the source image
func (s *DragSourceImage) Load(ctx context.Context, loader ImageLoader) {
	loader.Load(ctx, s.url, func(img image.Image, err error) {
		if err != nil {
			log.Printf("Source image load failed: %v", err)
			return
		}
		fyne.Do(func() {
			s.image.Image = img
			s.image.Refresh()
		})
	})
}

func (s *DragSourceImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVBox(container.NewStack(s.image, s.outline), s.title))
}

// MouseDown arms the long-press timer
func (s *DragSourceImage) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.press(ev.AbsolutePosition)
}

// MouseUp releases a transfer that was never dragged
func (s *DragSourceImage) MouseUp(ev *desktop.MouseEvent) {
	s.release(ev.AbsolutePosition)
}

// TouchDown arms the long-press timer
func (s *DragSourceImage) TouchDown(ev *mobile.TouchEvent) {
	s.press(ev.AbsolutePosition)
}

// TouchUp releases a transfer that was never dragged
func (s *DragSourceImage) TouchUp(ev *mobile.TouchEvent) {
	s.release(ev.AbsolutePosition)
}

// TouchCancel aborts any pending long-press or running transfer
func (s *DragSourceImage) TouchCancel(*mobile.TouchEvent) {
	s.disarm()
	if s.session != nil {
		s.session.Cancel()
		s.endSession()
	}
}

// Dragged moves the running transfer, or abandons a pending long-press
// once the pointer strays past the slop distance.
func (s *DragSourceImage) Dragged(ev *fyne.DragEvent) {
	s.lastPos = ev.AbsolutePosition
	if s.session == nil {
		if s.pressed && distance(s.pressPos, ev.AbsolutePosition) > dragSlop {
			s.disarm()
		}
		return
	}
	s.session.Move(ev.AbsolutePosition)
}

// DragEnd releases the running transfer at the last drag position
func (s *DragSourceImage) DragEnd() {
	s.release(s.lastPos)
}

// LongPress starts a transfer carrying the source address. Failure to
// start is logged and otherwise ignored.
func (s *DragSourceImage) LongPress() {
	s.disarm()

	session, err := s.host.StartTransfer(dnd.NewPlainText("image uri", s.url))
	if err != nil {
		log.Printf("Failed to start drag: %v", err)
		return
	}
	s.session = session
	log.Printf("Dragging %q from %s", session.Transfer().Description.Label, s.url)
	s.outline.StrokeColor = colorOutline
	s.outline.Refresh()
	session.Move(s.pressPos)
}

func (s *DragSourceImage) press(pos fyne.Position) {
	s.disarm()
	s.pressed = true
	s.pressPos = pos
	s.lastPos = pos

	gen := s.pressGen
	s.afterFunc(s.longPress, func() {
		fyne.Do(func() {
			if s.pressed && s.pressGen == gen {
				s.LongPress()
			}
		})
	})
}

// disarm cancels a pending long-press
func (s *DragSourceImage) disarm() {
	s.pressed = false
	s.pressGen++
}

func (s *DragSourceImage) release(pos fyne.Position) {
	s.disarm()
	if s.session == nil {
		return
	}
	s.session.Release(pos)
	s.endSession()
}

func (s *DragSourceImage) endSession() {
	s.session = nil
	s.outline.StrokeColor = color.Transparent
	s.outline.Refresh()
}

func distance(a, b fyne.Position) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return fyne.Max(dx, dy)
}

// DropTargetImage renders the image at its current address, tinted to
// show whether a drag is hovering over it. It owns a dnd.DropTarget and
// re-renders whenever that state changes.
type DropTargetImage struct {
	widget.BaseWidget

	state  *dnd.DropTarget
	loader ImageLoader
	ctx    context.Context

	image   *canvas.Image
	title   *widget.Label
	caption *widget.Label
	address binding.String

	source  image.Image
	tinted  map[dnd.Tint]image.Image
	shown   string
	loadGen int

	unregister  func()
	unsubscribe func()
}

// NewDropTargetImage creates a drop target showing url and registers it
// with host. Call Close to unregister.
func NewDropTargetImage(ctx context.Context, url string, host *dnd.Host, loader ImageLoader) *DropTargetImage {
	t := &DropTargetImage{
		state:   dnd.NewDropTarget(url),
		loader:  loader,
		ctx:     ctx,
		image:   newImage(),
		title:   newTitle(targetDescription),
		address: binding.NewString(),
		tinted:  make(map[dnd.Tint]image.Image),
	}
	t.caption = widget.NewLabelWithData(t.address)
	t.caption.Alignment = fyne.TextAlignCenter
	t.caption.Truncation = fyne.TextTruncateEllipsis
	t.ExtendBaseWidget(t)

	t.unsubscribe = t.state.Subscribe(t.render)
	t.unregister = host.Register(t.state, t.contains)
	t.render(t.state.Snapshot())
	return t
}

// Description returns the static description shown under the image
func (t *DropTargetImage) Description() string { return targetDescription }

// State exposes the underlying drop target
func (t *DropTargetImage) State() *dnd.DropTarget { return t.state }

// Close unregisters the target from its host
func (t *DropTargetImage) Close() {
	t.unregister()
	t.unsubscribe()
}

// Reload discards the current bitmap and fetches the address again
func (t *DropTargetImage) Reload() {
	t.shown = ""
	t.render(t.state.Snapshot())
}

func (t *DropTargetImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVBox(t.image, t.title, t.caption))
}

// contains hit-tests an absolute canvas position against the image
func (t *DropTargetImage) contains(pos fyne.Position) bool {
	app := fyne.CurrentApp()
	if app == nil || !t.Visible() {
		return false
	}
	origin := app.Driver().AbsolutePositionForObject(t.image)
	size := t.image.Size()
	return pos.X >= origin.X && pos.X < origin.X+size.Width &&
		pos.Y >= origin.Y && pos.Y < origin.Y+size.Height
}

// render brings the view in line with snap
func (t *DropTargetImage) render(snap dnd.Snapshot) {
	if snap.Address != t.shown {
		t.shown = snap.Address
		_ = t.address.Set(snap.Address)
		t.load(snap.Address)
	}
	t.applyTint(snap.Tint)
}

func (t *DropTargetImage) load(url string) {
	t.loadGen++
	gen := t.loadGen
	t.loader.Load(t.ctx, url, func(img image.Image, err error) {
		fyne.Do(func() {
			if gen != t.loadGen {
				return
			}
			if err != nil {
				log.Printf("Target image load failed: %v", err)
				return
			}
			t.source = img
			t.tinted = make(map[dnd.Tint]image.Image)
			t.applyTint(t.state.Tint())
		})
	})
}

func (t *DropTargetImage) applyTint(tint dnd.Tint) {
	src := t.source
	if src == nil {
		src = assets.Placeholder()
	}
	img, ok := t.tinted[tint]
	if !ok || t.source == nil {
		img = imageload.Modulate(src, tint.Color())
		if t.source != nil {
			t.tinted[tint] = img
		}
	}
	t.image.Image = img
	t.image.Refresh()
}
