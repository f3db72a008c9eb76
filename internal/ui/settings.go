package ui

import (
	"errors"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"dragdrop/internal/config"
)

var errInvalidURL = errors.New("image address must be an http(s) URL")

// SettingsDialog manages the settings window
type SettingsDialog struct {
	app    fyne.App
	config *config.Config
	onSave func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(app fyne.App, cfg *config.Config) *SettingsDialog {
	return &SettingsDialog{
		app:    app,
		config: cfg,
	}
}

// SetCallbacks sets the callback functions
func (s *SettingsDialog) SetCallbacks(onSave func()) {
	s.onSave = onSave
}

// validateImageURL accepts absolute http and https addresses
func validateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errInvalidURL
	}
	return nil
}

// Show displays the settings window
func (s *SettingsDialog) Show() {
	window := s.app.NewWindow("Drag and Drop Settings")
	window.Resize(fyne.NewSize(420, 360))

	// --- Images ---
	imagesLabel := widget.NewLabel("Images")
	imagesLabel.TextStyle = fyne.TextStyle{Bold: true}

	sourceEntry := widget.NewEntry()
	sourceEntry.SetText(s.config.SourceURL)
	sourceEntry.Validator = validateImageURL

	targetEntry := widget.NewEntry()
	targetEntry.SetText(s.config.TargetURL)
	targetEntry.Validator = validateImageURL

	imagesSection := container.NewVBox(
		imagesLabel,
		widget.NewLabel("Drag source"),
		sourceEntry,
		widget.NewLabel("Initial drop target"),
		targetEntry,
	)

	// --- Behaviour ---
	behaviourLabel := widget.NewLabel("Behaviour")
	behaviourLabel.TextStyle = fyne.TextStyle{Bold: true}

	pressBinding := binding.NewFloat()
	pressBinding.Set(float64(s.config.LongPressMillis))
	pressSlider := widget.NewSliderWithData(200, 1500, pressBinding)
	pressSlider.Step = 50
	pressValueLabel := widget.NewLabel(fmt.Sprintf("%dms", s.config.LongPressMillis))
	pressBinding.AddListener(binding.NewDataListener(func() {
		v, _ := pressBinding.Get()
		pressValueLabel.SetText(fmt.Sprintf("%.0fms", v))
	}))

	cacheBinding := binding.NewBool()
	cacheBinding.Set(s.config.CacheEnabled)
	cacheCheck := widget.NewCheckWithData("Cache downloaded images", cacheBinding)

	behaviourSection := container.NewVBox(
		behaviourLabel,
		container.NewHBox(widget.NewLabel("Long-press delay"), layout.NewSpacer(), pressValueLabel),
		pressSlider,
		cacheCheck,
	)

	// --- Buttons ---
	saveBtn := widget.NewButton("Save", func() {
		for _, e := range []*widget.Entry{sourceEntry, targetEntry} {
			if err := e.Validate(); err != nil {
				dialog.ShowError(err, window)
				return
			}
		}

		press, _ := pressBinding.Get()
		cache, _ := cacheBinding.Get()
		s.config.LongPressMillis = int(press)
		s.config.CacheEnabled = cache

		if err := s.config.SetURLs(sourceEntry.Text, targetEntry.Text); err != nil {
			dialog.ShowError(err, window)
			return
		}

		if s.onSave != nil {
			s.onSave()
		}

		dialog.ShowInformation("Saved", "Settings saved. Changes apply on next start.", window)
	})
	saveBtn.Importance = widget.HighImportance

	closeBtn := widget.NewButton("Close", func() {
		window.Close()
	})

	buttons := container.NewHBox(layout.NewSpacer(), saveBtn, closeBtn, layout.NewSpacer())

	// --- Layout ---
	content := container.NewVBox(
		imagesSection,
		widget.NewSeparator(),
		behaviourSection,
		widget.NewSeparator(),
		buttons,
	)

	window.SetContent(container.NewPadded(content))
	window.Show()
}
