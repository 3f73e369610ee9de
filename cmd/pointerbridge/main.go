// Command pointerbridge reads a Linux input device, normalizes it through a
// pointer.Context and logs the resulting events or forwards them to a
// websocket server.
//
// Every flag can also be set through the environment variable shown in
// its help text.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := Config{
		WSURL:     getenvDefault("POINTER_WS", ""),
		Input:     os.Getenv("POINTER_INPUT"),
		Kind:      getenvDefault("POINTER_KIND", "auto"),
		Grab:      getenvBoolDefault("POINTER_GRAB", false),
		HintsPath: os.Getenv("POINTER_HINTS"),
		Width:     getenvIntDefault("POINTER_WIDTH", 1920),
		Height:    getenvIntDefault("POINTER_HEIGHT", 1080),
		LogEvents: getenvBoolDefault("POINTER_LOG_EVENTS", true),
		EventTime: getenvBoolDefault("POINTER_EVENT_TIME", false),
		Debug:     getenvBoolDefault("POINTER_DEBUG", false),
		PingEvery: getenvDurationDefault("POINTER_PING", 5*time.Second),
		PongWait:  getenvDurationDefault("POINTER_PONG_TIMEOUT", 15*time.Second),
	}

	flag.StringVar(&cfg.WSURL, "ws", cfg.WSURL, "websocket URL to forward events to; empty disables forwarding (POINTER_WS)")
	flag.StringVar(&cfg.Input, "input", cfg.Input, "input device path, e.g. /dev/input/event3; empty picks one (POINTER_INPUT)")
	flag.StringVar(&cfg.Kind, "kind", cfg.Kind, "device kind: auto|mouse|pen (POINTER_KIND)")
	flag.BoolVar(&cfg.Grab, "grab", cfg.Grab, "take exclusive access to the device (POINTER_GRAB)")
	flag.StringVar(&cfg.HintsPath, "hints", cfg.HintsPath, "YAML or TOML hint file (POINTER_HINTS)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "virtual window width (POINTER_WIDTH)")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "virtual window height (POINTER_HEIGHT)")
	flag.BoolVar(&cfg.LogEvents, "log-events", cfg.LogEvents, "log every normalized event (POINTER_LOG_EVENTS)")
	flag.BoolVar(&cfg.EventTime, "event-time", cfg.EventTime, "use kernel event timestamps (POINTER_EVENT_TIME)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging and pointer debug mode (POINTER_DEBUG)")
	flag.DurationVar(&cfg.PingEvery, "ping", cfg.PingEvery, "websocket ping interval (POINTER_PING)")
	flag.DurationVar(&cfg.PongWait, "pong-timeout", cfg.PongWait, "reconnect if no pong arrives in this window (POINTER_PONG_TIMEOUT)")
	flag.BoolVar(&cfg.ListDevices, "list-devices", false, "print /proc/bus/input/devices and exit")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, slog.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
