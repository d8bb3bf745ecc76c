package config

import (
	"fmt"
	"time"
)

// Default returns the baseline configuration for a bare device install.
func Default() *Config {
	return &Config{
		Display: Display{
			Width:         480,
			Height:        480,
			FrameInterval: 200 * time.Millisecond,
			SnapshotPath:  "/run/padview/frame.png",
		},
		Strip: Strip{
			Zones: 7,
		},
		Launch: Launch{
			BaseURL:      "https://ll.thespacedevs.com/2.3.0",
			Window:       180 * 24 * time.Hour,
			RetryDelay:   30 * time.Second,
			IdleInterval: 500 * time.Second,
			RefreshAfter: time.Hour,
			AssetDir:     "/var/lib/padview/assets",
		},
		Cache: Cache{
			TTL: 5 * time.Minute,
		},
		History: History{
			Path: "/var/lib/padview/history.db",
		},
		Server: Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

func (c *Config) validate() error {
	if c.Display.Width < 1 || c.Display.Height < 1 {
		return fmt.Errorf("invalid display resolution: %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.FrameInterval < 10*time.Millisecond {
		return fmt.Errorf("frame interval must be at least 10ms")
	}
	if c.Strip.Zones < 1 {
		return fmt.Errorf("invalid zone count: %d", c.Strip.Zones)
	}
	if c.Launch.BaseURL == "" {
		return fmt.Errorf("launch base URL is required")
	}
	if c.Launch.Window < time.Hour {
		return fmt.Errorf("launch window must be at least 1 hour")
	}
	if c.Launch.RetryDelay < time.Second {
		return fmt.Errorf("retry delay must be at least 1 second")
	}
	if c.Launch.AssetDir == "" {
		return fmt.Errorf("asset directory is required")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("cache address is required when the cache is enabled")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}
