// The padviewd command implements the padview countdown display daemon
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/padview/padview/internal/padviewd/assets"
	"github.com/padview/padview/internal/padviewd/clock"
	"github.com/padview/padview/internal/padviewd/config"
	"github.com/padview/padview/internal/padviewd/cycle"
	"github.com/padview/padview/internal/padviewd/history"
	"github.com/padview/padview/internal/padviewd/launch"
	"github.com/padview/padview/internal/padviewd/launch/ll2"
	"github.com/padview/padview/internal/padviewd/launch/rediscache"
	"github.com/padview/padview/internal/padviewd/light"
	"github.com/padview/padview/internal/padviewd/light/ws2812"
	"github.com/padview/padview/internal/padviewd/scene"
	"github.com/padview/padview/internal/padviewd/status"
	"github.com/padview/padview/internal/padviewd/surface"
)

// version is set during build
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Structured logging with JSON format for easier parsing
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("daemon exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Frame presenters: framebuffer when configured, PNG snapshot when
	// configured. Either may be absent during development.
	var presenters []surface.Presenter
	if cfg.Display.Framebuffer != "" {
		fb, err := surface.OpenFramebuffer(cfg.Display.Framebuffer, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			return fmt.Errorf("opening framebuffer: %w", err)
		}
		defer fb.Close()
		presenters = append(presenters, fb)
	}
	if cfg.Display.SnapshotPath != "" {
		presenters = append(presenters, surface.NewSnapshot(cfg.Display.SnapshotPath))
	}

	mem, err := surface.NewMemory(cfg.Display.Width, cfg.Display.Height, presenters...)
	if err != nil {
		return fmt.Errorf("creating render surface: %w", err)
	}
	renderer := scene.NewRenderer(mem, mem, logger)
	bootlog := scene.NewBootLog(mem, mem)

	// Light strip: the websocket zone stream always observes; the WS2812
	// hardware driver is teed in when an SPI port is configured.
	zones := status.NewZoneStream(cfg.Strip.Zones)
	strip := light.Tee{zones}
	if cfg.Strip.SPIPort != "" {
		drv, err := ws2812.Open(cfg.Strip.SPIPort, cfg.Strip.Zones)
		if err != nil {
			return fmt.Errorf("opening light strip: %w", err)
		}
		defer drv.Close()
		strip = append(strip, drv)
	}
	animator := light.NewAnimator(cfg.Strip.Zones, light.Nebula, strip)

	// Launch source, optionally wrapped in the Redis cache.
	var source launch.Source = ll2.NewClient(logger,
		ll2.WithBaseURL(cfg.Launch.BaseURL),
		ll2.WithWindow(cfg.Launch.Window),
	)
	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr})
		defer rdb.Close()
		source = rediscache.New(source, rdb, cfg.Cache.TTL, logger)
	}

	store, err := assets.NewStore(cfg.Launch.AssetDir)
	if err != nil {
		return fmt.Errorf("creating asset store: %w", err)
	}
	provider := assets.NewProvider(store, logger)

	cycleCfg := cycle.Config{
		FrameInterval: cfg.Display.FrameInterval,
		IdleInterval:  cfg.Launch.IdleInterval,
		RefreshAfter:  cfg.Launch.RefreshAfter,
		Retry:         cycle.Policy{Delay: cfg.Launch.RetryDelay},
	}
	c := cycle.New(cycleCfg, source, provider, renderer, animator, clock.NewSystem(), logger).
		WithBootLog(bootlog)

	var hist *history.Store
	if cfg.History.Path != "" {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening session history: %w", err)
		}
		defer hist.Close()
		c.WithHistory(hist)
	}

	// Status API. zerolog for request-path logging, matching the handler.
	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var handler *status.Handler
	if hist != nil {
		handler = status.NewHandler(c, hist, zones, zlog, version)
	} else {
		handler = status.NewHandler(c, nil, zones, zlog, version)
	}
	c.WithPublisher(handler)
	go handler.Run(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info("starting status server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("status server error", "error", err)
		}
	}()

	logger.Info("starting display cycle",
		"resolution", fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height),
		"zones", cfg.Strip.Zones,
		"version", version,
	)
	err = c.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := server.Shutdown(shutdownCtx); serr != nil {
		logger.Error("status server shutdown error", "error", serr)
	}

	if err == context.Canceled {
		logger.Info("daemon stopped")
		return nil
	}
	return err
}
