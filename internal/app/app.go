package app

import (
	"context"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"dragdrop/internal/assets"
	"dragdrop/internal/config"
	"dragdrop/internal/dnd"
	"dragdrop/internal/imageload"
	"dragdrop/internal/ui"
)

// App is the main application
type App struct {
	fyneApp fyne.App
	config  *config.Config
	host    *dnd.Host
	cache   *imageload.Cache
	loader  *imageload.Loader

	// UI components
	window   *ui.MainWindow
	menu     *ui.MenuManager
	settings *ui.SettingsDialog

	// State
	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Run starts the application
func Run() error {
	a := &App{}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	// Initialize Fyne app
	a.fyneApp = app.NewWithID("com.dragdrop.app")
	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.fyneApp.SetIcon(assets.AppIcon())

	// Load config
	a.config = config.Get()

	// Image pipeline
	a.initLoader()

	// Drag-and-drop host shared by the source and target views
	a.host = dnd.NewHost()

	// Initialize UI
	if err := a.initUI(); err != nil {
		return err
	}

	a.initLifecycle()

	a.running = true

	// Run the app (blocking)
	a.window.Show()
	a.fyneApp.Run()

	// Cleanup
	a.shutdown()

	return nil
}

// initLoader opens the image cache (when enabled) and builds the loader
func (a *App) initLoader() {
	if path := a.config.ResolvedCachePath(); path != "" {
		cache, err := imageload.OpenCache(path)
		if err != nil {
			log.Printf("Warning: Image cache unavailable: %v", err)
		} else {
			a.cache = cache
			log.Printf("Image cache at %s", path)
		}
	}

	client := imageload.NewClient(a.config.Timeout())
	a.loader = imageload.NewLoader(client, a.cache, a.config.MaxImageEdge)
}

// initUI initializes all UI components
func (a *App) initUI() error {
	a.window = ui.NewMainWindow(a.ctx, a.fyneApp, a.config, a.host, a.loader)
	if err := a.window.Setup(); err != nil {
		return err
	}

	a.menu = ui.NewMenuManager(a.window.GetWindow())
	a.menu.SetCallbacks(
		a.reloadImages,
		a.showSettings,
		a.quit,
	)
	a.menu.Setup()

	return nil
}

// reloadImages clears the cache and fetches both images again
func (a *App) reloadImages() {
	if err := a.loader.ClearCache(a.ctx); err != nil {
		log.Printf("Failed to clear image cache: %v", err)
	}
	a.window.Reload()
}

// showSettings shows the settings dialog
func (a *App) showSettings() {
	if a.settings == nil {
		a.settings = ui.NewSettingsDialog(a.fyneApp, a.config)
		a.settings.SetCallbacks(func() {
			log.Println("Settings saved")
			// Warm the cache so the next start shows the new images at once
			go a.loader.Prefetch(a.ctx, a.config.SourceURL, a.config.TargetURL)
		})
	}
	a.settings.Show()
}

// initLifecycle cancels a drag still running when the driver stops,
// while the UI thread is alive
func (a *App) initLifecycle() {
	a.fyneApp.Lifecycle().SetOnStopped(a.cancelDrag)
}

// cancelDrag ends any running drag session without a drop
func (a *App) cancelDrag() {
	if session := a.host.Active(); session != nil {
		log.Printf("Cancelling drag session %s on exit", session.ID)
		session.Cancel()
	}
}

// quit shuts down the application
func (a *App) quit() {
	a.shutdown()
	a.fyneApp.Quit()
}

// shutdown cleans up resources
func (a *App) shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	// Abort in-flight downloads
	a.cancel()

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("Failed to close image cache: %v", err)
		}
	}

	log.Println("Shutdown complete")
}
