package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"

	"dragdrop/internal/config"
	"dragdrop/internal/dnd"
)

const (
	windowTitle = "Drag and Drop"

	// contentPadding surrounds the two images
	contentPadding = 48
)

// MainWindow shows the drag source above the drop target
type MainWindow struct {
	window fyne.Window
	app    fyne.App
	config *config.Config
	host   *dnd.Host
	loader ImageLoader
	ctx    context.Context

	source *DragSourceImage
	target *DropTargetImage
}

// NewMainWindow creates the main window. Addresses are read from cfg once.
func NewMainWindow(ctx context.Context, app fyne.App, cfg *config.Config, host *dnd.Host, loader ImageLoader) *MainWindow {
	return &MainWindow{
		app:    app,
		config: cfg,
		host:   host,
		loader: loader,
		ctx:    ctx,
	}
}

// Setup builds the window content and starts loading both images
func (m *MainWindow) Setup() error {
	m.window = m.app.NewWindow(windowTitle)
	m.window.Resize(fyne.NewSize(float32(m.config.WindowWidth), float32(m.config.WindowHeight)))

	m.source = NewDragSourceImage(m.config.SourceURL, m.host, m.config.LongPress())
	m.target = NewDropTargetImage(m.ctx, m.config.TargetURL, m.host, m.loader)
	m.source.Load(m.ctx, m.loader)

	m.window.SetContent(m.buildContent())
	m.window.SetOnClosed(m.target.Close)

	log.Printf("Main window ready (source %s, target %s)", m.config.SourceURL, m.config.TargetURL)
	return nil
}

// buildContent stacks source and target vertically, centered, with fixed padding
func (m *MainWindow) buildContent() fyne.CanvasObject {
	bg := canvas.NewRectangle(colorBg)

	hint := canvas.NewText("Long-press the top image, then drag it onto the bottom one", colorGray)
	hint.TextSize = 12
	hint.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		container.NewCenter(m.source),
		hint,
		container.NewCenter(m.target),
	)
	padded := container.New(layout.NewCustomPaddedLayout(contentPadding, contentPadding, contentPadding, contentPadding), content)
	return container.NewStack(bg, container.NewVScroll(padded))
}

// Show displays the window
func (m *MainWindow) Show() {
	m.window.Show()
}

// Reload fetches both images again
func (m *MainWindow) Reload() {
	m.source.Load(m.ctx, m.loader)
	m.target.Reload()
}

// GetWindow returns the underlying Fyne window
func (m *MainWindow) GetWindow() fyne.Window {
	return m.window
}

// Source returns the drag source view
func (m *MainWindow) Source() *DragSourceImage { return m.source }

// Target returns the drop target view
func (m *MainWindow) Target() *DropTargetImage { return m.target }
