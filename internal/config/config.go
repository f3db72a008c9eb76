package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. DRAGDROP_SOURCE_URL
const envPrefix = "DRAGDROP"

// Config holds all application settings
type Config struct {
	SourceURL       string `json:"source_url" mapstructure:"source_url"`
	TargetURL       string `json:"target_url" mapstructure:"target_url"`
	LongPressMillis int    `json:"long_press_ms" mapstructure:"long_press_ms"`
	FetchTimeout    int    `json:"fetch_timeout" mapstructure:"fetch_timeout"` // seconds
	MaxImageEdge    int    `json:"max_image_edge" mapstructure:"max_image_edge"`
	CacheEnabled    bool   `json:"cache_enabled" mapstructure:"cache_enabled"`
	CachePath       string `json:"cache_path,omitempty" mapstructure:"cache_path"`
	WindowWidth     int    `json:"window_width" mapstructure:"window_width"`
	WindowHeight    int    `json:"window_height" mapstructure:"window_height"`
}

var (
	instance   *Config
	once       sync.Once
	mu         sync.RWMutex
	configPath string
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		SourceURL:       "https://picsum.photos/id/237/600/400",
		TargetURL:       "https://picsum.photos/id/1025/600/400",
		LongPressMillis: 500,
		FetchTimeout:    30,
		MaxImageEdge:    1024,
		CacheEnabled:    true,
		WindowWidth:     480,
		WindowHeight:    720,
	}
}

// Get returns the singleton config instance
func Get() *Config {
	once.Do(func() {
		instance = Default()
		_ = instance.Load()
	})
	return instance
}

// LongPress returns the long-press delay, never shorter than 100ms
func (c *Config) LongPress() time.Duration {
	d := time.Duration(c.LongPressMillis) * time.Millisecond
	if d < 100*time.Millisecond {
		return 100 * time.Millisecond
	}
	return d
}

// Timeout returns the image fetch timeout
func (c *Config) Timeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeout) * time.Second
}

// ResolvedCachePath returns the image cache database path, or "" when
// caching is disabled or no cache directory is available.
func (c *Config) ResolvedCachePath() string {
	if !c.CacheEnabled {
		return ""
	}
	if c.CachePath != "" {
		return c.CachePath
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dragdrop", "images.db")
}

// getConfigPath returns the path to the config file.
// Uses platform-appropriate directories:
//   - Windows: %APPDATA%\DragDrop\config.json
//   - macOS:   ~/Library/Application Support/DragDrop/config.json
//   - Linux:   ~/.config/dragdrop/config.json (XDG_CONFIG_HOME)
func getConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	var dir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		dir = filepath.Join(appData, "DragDrop")

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "Application Support", "DragDrop")

	default: // linux and others
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configHome = filepath.Join(home, ".config")
		}
		dir = filepath.Join(configHome, "dragdrop")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	configPath = filepath.Join(dir, "config.json")
	return configPath, nil
}

// Load reads the config file (if present) and DRAGDROP_* environment
// overrides on top of the current values.
func (c *Config) Load() error {
	mu.Lock()
	defer mu.Unlock()

	path, err := getConfigPath()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetDefault("source_url", c.SourceURL)
	v.SetDefault("target_url", c.TargetURL)
	v.SetDefault("long_press_ms", c.LongPressMillis)
	v.SetDefault("fetch_timeout", c.FetchTimeout)
	v.SetDefault("max_image_edge", c.MaxImageEdge)
	v.SetDefault("cache_enabled", c.CacheEnabled)
	v.SetDefault("cache_path", c.CachePath)
	v.SetDefault("window_width", c.WindowWidth)
	v.SetDefault("window_height", c.WindowHeight)

	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	mu.Lock()
	defer mu.Unlock()

	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetURLs updates both image addresses and saves.
// The running window keeps its addresses until the next start.
func (c *Config) SetURLs(source, target string) error {
	c.SourceURL = source
	c.TargetURL = target
	return c.Save()
}
