package ui

import (
	"log"

	"fyne.io/fyne/v2"
)

// MenuManager builds the main window menu
type MenuManager struct {
	window     fyne.Window
	menu       *fyne.MainMenu
	onReload   func()
	onSettings func()
	onQuit     func()
}

// NewMenuManager creates a menu manager for window
func NewMenuManager(window fyne.Window) *MenuManager {
	return &MenuManager{window: window}
}

// SetCallbacks sets the callback functions for menu actions
func (m *MenuManager) SetCallbacks(onReload, onSettings, onQuit func()) {
	m.onReload = onReload
	m.onSettings = onSettings
	m.onQuit = onQuit
}

// Setup installs the main menu
func (m *MenuManager) Setup() {
	reloadItem := fyne.NewMenuItem("Reload Images", func() {
		if m.onReload != nil {
			m.onReload()
		}
	})

	settingsItem := fyne.NewMenuItem("Settings...", func() {
		if m.onSettings != nil {
			m.onSettings()
		}
	})

	quitItem := fyne.NewMenuItem("Quit", func() {
		if m.onQuit != nil {
			m.onQuit()
		}
	})
	quitItem.IsQuit = true

	m.menu = fyne.NewMainMenu(
		fyne.NewMenu("File", reloadItem, settingsItem, fyne.NewMenuItemSeparator(), quitItem),
	)
	m.window.SetMainMenu(m.menu)
	log.Println("Main menu initialized")
}

// Menu returns the installed menu
func (m *MenuManager) Menu() *fyne.MainMenu {
	return m.menu
}
