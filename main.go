package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GreyStinger/riv/internal/app"
	"github.com/GreyStinger/riv/internal/cache"
	"github.com/GreyStinger/riv/internal/config"
	"github.com/GreyStinger/riv/internal/decode"
	"github.com/GreyStinger/riv/internal/errmsg"
	"github.com/GreyStinger/riv/internal/fit"
	"github.com/GreyStinger/riv/internal/graphics"
	"github.com/GreyStinger/riv/internal/logging"
	"github.com/GreyStinger/riv/internal/source"
	"github.com/GreyStinger/riv/internal/viewer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpConfigLoad, err))
	}

	upscale := flag.Bool("u", cfg.Upscale, "allow scaling images beyond their native size")
	debug := flag.Bool("d", false, "write a debug log")
	flag.Parse()

	if *debug {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() { _ = logger.Sync() }()

	// Start path: positional argument > config > cwd.
	path := cfg.Path
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		path, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	items, start, err := source.List(path)
	if err != nil {
		return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpSourceList, path, err))
	}
	logger.Info("source listed", zap.String("path", path), zap.Int("count", len(items)))

	proto := selectProtocol(cfg.Protocol)

	// Viewport in pixels; refined by the first WindowSizeMsg unless
	// pinned by config.
	cellW, cellH := 8, 16
	if proto != nil {
		cellW, cellH = proto.CellSize()
	}
	vp := fit.Viewport{Width: 80 * cellW, Height: 23 * cellH, Zoom: 1}
	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		vp.Width, vp.Height = cfg.Viewport.Width, cfg.Viewport.Height
	}

	lim := fit.Limits{
		MinScale: cfg.Limits.MinZoom,
		MaxScale: cfg.Limits.MaxZoom,
		Upscale:  *upscale,
	}

	c := cache.New(cache.Config{
		Items:    items,
		Decoder:  decode.New(cfg.Limits.MaxPixels),
		Ahead:    cfg.Prefetch.Ahead,
		Behind:   cfg.Prefetch.Behind,
		Workers:  cfg.Prefetch.Workers,
		Viewport: vp,
		Limits:   lim,
		Logger:   logger,
	})
	defer c.Close()

	v := viewer.New(items, c, vp, viewer.Limits{
		MinZoom: cfg.Limits.MinZoom,
		MaxZoom: cfg.Limits.MaxZoom,
	}, start)

	m := app.New(v, c, proto, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// selectProtocol honors the config override, falling back to detection.
func selectProtocol(name string) graphics.Protocol {
	switch name {
	case "kitty":
		return graphics.NewKittyProtocol()
	case "sixel":
		return graphics.NewSixelProtocol()
	case "none":
		return nil
	default:
		return graphics.Detect()
	}
}
