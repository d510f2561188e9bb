// pulsebar is an i3bar/swaybar status generator.
//
// It speaks the i3bar JSON protocol on stdout, reads click events from
// stdin, and composes the status line from independently-polled sources:
// media player, volume, keyboard layout, disk, network, load, memory,
// temperature, battery, backlight, and clock.
//
// Usage:
//
//	pulsebar [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/pulsebar/config.toml)
//	-verbose        Enable verbose logging
//	-version        Print version and exit
//	-once           Render a single status line and exit
//
// Logs go to stderr (and optionally a file) because stdout belongs to the
// protocol stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/tinyland/lab/pulsebar/pkg/audio"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
	"gitlab.com/tinyland/lab/pulsebar/pkg/mpris"
	"gitlab.com/tinyland/lab/pulsebar/pkg/notify"
	"gitlab.com/tinyland/lab/pulsebar/pkg/protocol"
	"gitlab.com/tinyland/lab/pulsebar/pkg/sources"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
		once        = flag.Bool("once", false, "Render a single status line and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pulsebar %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration.
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogging(cfg.Log, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Startup failures past this point are fatal: without the notification
	// sink or the output boundary the bar cannot honor its contract.
	notifier, err := notify.New("pulsebar", logger)
	if err != nil {
		logger.Error("notification subsystem init failed", "error", err)
		os.Exit(1)
	}

	player, err := mpris.Connect()
	if err != nil {
		logger.Error("media player bus init failed", "error", err)
		os.Exit(1)
	}

	mixer := audio.NewAlsaMixer(cfg.Audio.Control)
	sinks := audio.PactlController{}
	backlight := sources.NewBacklight(cfg.Sources.Backlight)

	actions := bar.NewActions(logger)
	registerActions(actions, cfg, logger, player, mixer, sinks, notifier, backlight)

	writer := protocol.NewWriter(os.Stdout)
	if err := writer.Start(); err != nil {
		logger.Error("output boundary init failed", "error", err)
		os.Exit(1)
	}

	sched := bar.NewScheduler(writer, logger)
	if err := registerSources(sched, cfg, player, mixer, notifier, backlight); err != nil {
		logger.Error("source registration failed", "error", err)
		os.Exit(1)
	}

	// Setup context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		if err := sched.RunOnce(ctx); err != nil {
			logger.Error("render failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	// Route clicks coming back on stdin to their registered actions. The
	// bound operation runs on this goroutine, never under the render lock.
	go protocol.ReadClicks(os.Stdin, func(ev protocol.ClickEvent) {
		if action, ok := sched.ClickAction(ev.Name, ev.Button); ok {
			actions.Dispatch(action)
		}
	}, logger)

	logger.Info("starting pulsebar", "version", version)
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bar terminated", "error", err)
		os.Exit(1)
	}
}

// setupLogging builds the stderr (plus optional file) logger.
func setupLogging(cfg config.LogConfig, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose || cfg.Level == "debug" {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

// registerActions binds every click-action name to its operation. Action
// failures are deliberately swallowed here: a failed volume step or track
// skip is logged and forgotten, never surfaced to the render pipeline.
func registerActions(
	actions *bar.Actions,
	cfg *config.Config,
	logger *slog.Logger,
	player *mpris.Player,
	mixer audio.Mixer,
	sinks audio.SinkController,
	notifier *notify.Notifier,
	backlight *sources.Backlight,
) {
	bestEffort := func(name string, op func() error) {
		actions.Register(name, func() {
			if err := op(); err != nil {
				logger.Warn("action failed", "action", name, "error", err)
			}
		})
	}

	// Media player controls.
	bestEffort("mus_toggle", player.PlayPause)
	bestEffort("mus_prev", player.Previous)
	bestEffort("mus_next", player.Next)

	// Volume and device controls.
	bestEffort("vol_up", func() error { return audio.Add(mixer, 5) })
	bestEffort("vol_down", func() error { return audio.Add(mixer, -5) })
	bestEffort("vol_mute", func() error { return audio.ToggleMute(mixer) })
	bestEffort("device_menu", func() error {
		return audio.PickDevice(cfg.Audio.Picker, sinks, notifier)
	})

	// Brightness controls.
	bestEffort("bright_up", func() error { return backlight.Adjust(0.05) })
	bestEffort("bright_down", func() error { return backlight.Adjust(-0.05) })
}

// registerSources adds every enabled source in render order.
func registerSources(
	sched *bar.Scheduler,
	cfg *config.Config,
	player *mpris.Player,
	mixer audio.Mixer,
	notifier *notify.Notifier,
	backlight *sources.Backlight,
) error {
	src := cfg.Sources

	type entry struct {
		enabled bool
		source  bar.Source
	}
	ordered := []entry{
		{src.Media.Enabled, sources.NewMedia(src.Media, player)},
		{src.Volume.Enabled, sources.NewVolume(src.Volume, mixer)},
		{src.Keyboard.Enabled, sources.NewKeyboard(src.Keyboard)},
		{src.Disk.Enabled, sources.NewDisk(src.Disk)},
		{src.Network.Enabled, sources.NewNetwork(src.Network)},
		{src.LoadAvg.Enabled, sources.NewLoadAvg(src.LoadAvg)},
		{src.Memory.Enabled, sources.NewMemory(src.Memory)},
		{src.Temperature.Enabled, sources.NewTemperature(src.Temperature)},
		{src.Battery.Enabled, sources.NewBattery(src.Battery, notifier)},
		{src.Backlight.Enabled, backlight},
		{src.Clock.Enabled, sources.NewClock(src.Clock)},
		{src.Text.Enabled, sources.NewStatic(src.Text)},
	}

	for _, e := range ordered {
		if !e.enabled {
			continue
		}
		if err := sched.Register(e.source); err != nil {
			return err
		}
	}
	return nil
}
