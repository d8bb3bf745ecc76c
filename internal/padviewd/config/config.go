// Package config provides configuration management for the padview daemon
package config

import (
	"time"
)

// Config holds all configuration for the daemon
type Config struct {
	Display Display `yaml:"display"`
	Strip   Strip   `yaml:"strip"`
	Launch  Launch  `yaml:"launch"`
	Cache   Cache   `yaml:"cache"`
	History History `yaml:"history"`
	Server  Server  `yaml:"server"`
}

// Display holds panel and render loop settings
type Display struct {
	// Width and Height are the panel resolution.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// FrameInterval is the render loop period.
	FrameInterval time.Duration `yaml:"frameInterval"`
	// Framebuffer is the output device path; empty disables the sink.
	Framebuffer string `yaml:"framebuffer"`
	// SnapshotPath receives a PNG of each frame; empty disables the sink.
	SnapshotPath string `yaml:"snapshotPath"`
}

// Strip holds light strip settings
type Strip struct {
	// Zones is the number of addressable elements.
	Zones int `yaml:"zones"`
	// SPIPort names the WS2812 SPI port; empty disables the hardware strip.
	SPIPort string `yaml:"spiPort"`
}

// Launch holds event source settings
type Launch struct {
	// BaseURL of the Launch Library API.
	BaseURL string `yaml:"baseUrl"`
	// Window bounds how far ahead to look for launches.
	Window time.Duration `yaml:"window"`
	// RetryDelay between failed fetch attempts.
	RetryDelay time.Duration `yaml:"retryDelay"`
	// IdleInterval between queries when the window is empty.
	IdleInterval time.Duration `yaml:"idleInterval"`
	// RefreshAfter ends a session early to pick up schedule changes.
	RefreshAfter time.Duration `yaml:"refreshAfter"`
	// AssetDir caches downloaded mission images.
	AssetDir string `yaml:"assetDir"`
}

// Cache holds the optional Redis launch cache settings
type Cache struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// History holds the session log settings
type History struct {
	// Path of the SQLite database; empty disables history.
	Path string `yaml:"path"`
}

// Server holds the status API settings
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// overlayEnv overlays environment variables on top of file-based config
func (c *Config) overlayEnv() {
	// Display config
	if w := getEnvAsInt("PADVIEW_DISPLAY_WIDTH", 0); w != 0 {
		c.Display.Width = w
	}
	if h := getEnvAsInt("PADVIEW_DISPLAY_HEIGHT", 0); h != 0 {
		c.Display.Height = h
	}
	if interval := getEnvAsDuration("PADVIEW_FRAME_INTERVAL", 0); interval != 0 {
		c.Display.FrameInterval = interval
	}
	if fb := getEnv("PADVIEW_FRAMEBUFFER", ""); fb != "" {
		c.Display.Framebuffer = fb
	}
	if snap := getEnv("PADVIEW_SNAPSHOT_PATH", ""); snap != "" {
		c.Display.SnapshotPath = snap
	}

	// Strip config
	if zones := getEnvAsInt("PADVIEW_STRIP_ZONES", 0); zones != 0 {
		c.Strip.Zones = zones
	}
	if port := getEnv("PADVIEW_STRIP_SPI_PORT", ""); port != "" {
		c.Strip.SPIPort = port
	}

	// Launch config
	if u := getEnv("PADVIEW_LAUNCH_BASE_URL", ""); u != "" {
		c.Launch.BaseURL = u
	}
	if window := getEnvAsDuration("PADVIEW_LAUNCH_WINDOW", 0); window != 0 {
		c.Launch.Window = window
	}
	if delay := getEnvAsDuration("PADVIEW_LAUNCH_RETRY_DELAY", 0); delay != 0 {
		c.Launch.RetryDelay = delay
	}
	if idle := getEnvAsDuration("PADVIEW_LAUNCH_IDLE_INTERVAL", 0); idle != 0 {
		c.Launch.IdleInterval = idle
	}
	if refresh := getEnvAsDuration("PADVIEW_LAUNCH_REFRESH_AFTER", 0); refresh != 0 {
		c.Launch.RefreshAfter = refresh
	}
	if dir := getEnv("PADVIEW_ASSET_DIR", ""); dir != "" {
		c.Launch.AssetDir = dir
	}

	// Cache config - check generic redis names too
	if addr := getEnvMulti([]string{"PADVIEW_CACHE_ADDR", "REDIS_ADDR"}, ""); addr != "" {
		c.Cache.Addr = addr
		c.Cache.Enabled = true
	}
	if ttl := getEnvAsDuration("PADVIEW_CACHE_TTL", 0); ttl != 0 {
		c.Cache.TTL = ttl
	}

	// History config
	if path := getEnv("PADVIEW_HISTORY_PATH", ""); path != "" {
		c.History.Path = path
	}

	// Server config
	if host := getEnv("PADVIEW_SERVER_HOST", ""); host != "" {
		c.Server.Host = host
	}
	if port := getEnvAsInt("PADVIEW_SERVER_PORT", 0); port != 0 {
		c.Server.Port = port
	}
}

// Load returns the default configuration with environment overrides applied
func Load() (*Config, error) {
	cfg := Default()
	cfg.overlayEnv()
	return cfg, cfg.validate()
}
