package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"simplevo/internal/app"
	"simplevo/internal/core"
	"simplevo/internal/demo"
	"simplevo/internal/hw"
	"simplevo/internal/sims/fire"
	"simplevo/internal/snapshot"
	_ "simplevo/internal/termview"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatalf("simplevo: %v", err)
	}

	if cfg.Params {
		printParams(cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("simplevo: %v", err)
	}
}

func run(ctx context.Context, cfg *app.Config) error {
	// The terminal display owns the tty; keep teletype output in history only
	// and silence logging until it is torn down.
	var tty *hw.Teletype
	if cfg.Display == "term" {
		tty = hw.NewTeletype(nil, 64)
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	} else {
		tty = hw.NewTeletype(os.Stdout, 64)
	}
	board := hw.NewBoard(cfg.Screen(), tty)

	// Displays are sized for the screen the engine will actually draw.
	screen, err := cfg.DisplayScreen()
	if err != nil {
		return err
	}

	var params atomic.Pointer[[]string]
	display, err := core.NewDisplay(cfg.Display, core.DisplayOptions{
		Title:    fmt.Sprintf("SimpleVO (%dx%d)", screen.W, screen.H),
		Screen:   screen,
		Scale:    cfg.Scale,
		LogEvery: cfg.LogEvery,
		Lines:    tty.Lines,
		Params: func() []string {
			if p := params.Load(); p != nil {
				return *p
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	board.SetScanout(display.Present)

	var machine *demo.Machine
	err = display.Serve(ctx, func(ctx context.Context) error {
		m, err := demo.Boot(ctx, board, board, cfg.DemoOptions())
		if err != nil {
			return err
		}
		machine = m
		lines := parameterLines(m.Engine().Sim())
		params.Store(&lines)
		log.Printf("simplevo: booted %dx%d on %s display", m.Screen().W, m.Screen().H, display.Name())

		if cfg.Frames != 0 {
			return m.DrawFrames(ctx, cfg.Frames)
		}
		name, src, err := loadScript(cfg.Script)
		if err != nil {
			return err
		}
		return m.RunScript(ctx, name, src)
	})

	if machine != nil {
		log.Printf("simplevo: %d frames, %d flushes", machine.Frames(), board.Flushes())
		if cfg.Snapshot != "" {
			if serr := snapshot.SaveFramebuffer(cfg.Snapshot, machine.Engine().Framebuffer()); serr != nil {
				return errors.Join(err, serr)
			}
			log.Printf("simplevo: wrote %s", cfg.Snapshot)
		}
	}
	return err
}

func loadScript(path string) (string, []byte, error) {
	if path == "" {
		return "firmware.star", demo.FirmwareScript(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, src, nil
}

func printParams(cfg *app.Config) {
	fc := cfg.EngineConfig().Fire
	fc.Width, fc.Height = cfg.Width, cfg.Height
	sim, err := fire.NewWithConfig(fc)
	if err != nil {
		log.Fatalf("simplevo: %v", err)
	}
	for _, l := range parameterLines(sim) {
		fmt.Println(l)
	}
}

func parameterLines(p core.ParameterProvider) []string {
	return p.Parameters().Lines()
}
