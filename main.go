package main

import (
	"codeberg.org/miketth/softboard/pkg/config"
	"codeberg.org/miketth/softboard/pkg/softboard"
	"codeberg.org/miketth/softboard/pkg/textsurface"
	"codeberg.org/miketth/softboard/pkg/tui"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.toml (default $XDG_CONFIG_HOME/softboard/config.toml)")
	mode := flag.String("mode", "daemon", "daemon or tui")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "daemon":
		log, err := newLogger(*debug, "stdout")
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		return runDaemon(ctx, cfg, log)
	case "tui":
		// stdout belongs to the terminal UI
		logPath, err := xdg.StateFile("softboard/tui.log")
		if err != nil {
			return fmt.Errorf("get log path: %w", err)
		}
		log, err := newLogger(*debug, logPath)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		return runTUI(ctx, cfg, log)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func runDaemon(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	layout, err := buildLayout(cfg)
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	inputs, err := newInputs(cfg, log)
	if err != nil {
		return fmt.Errorf("create input sources: %w", err)
	}

	lines := softboard.NewLineWriter(log)
	session := softboard.NewSession(layout, lines, inputs, store, log)
	session.SetObserver(lines)

	srv, err := softboard.NewServer(cfg.Daemon.Socket, session, lines, log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	log.Infow("started softboard", "socket", cfg.Daemon.Socket, "store", cfg.Store.Backend, "input", cfg.Input.Backend)

	errChan := make(chan error, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := srv.Serve(ctx)
		if err != nil {
			errChan <- fmt.Errorf("serve: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := store.run(ctx)
		if err != nil {
			errChan <- fmt.Errorf("run store: %w", err)
		}
	}()

	if cfg.Input.Backend == "hyprland" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := followWindows(ctx, session)
			if err != nil {
				errChan <- fmt.Errorf("follow windows: %w", err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

func runTUI(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	layout, err := buildLayout(cfg)
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	inputs, err := newInputs(cfg, log)
	if err != nil {
		return fmt.Errorf("create input sources: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	storeDone := make(chan error, 1)
	go func() {
		storeDone <- store.run(ctx)
	}()

	doc := textsurface.NewDocument("")
	session := softboard.NewSession(layout, doc, inputs, store, log)

	model, err := tui.New(session, doc)
	if err != nil {
		return fmt.Errorf("create tui: %w", err)
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	cancel()
	if err := <-storeDone; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run store: %w", err)
	}

	return nil
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Waiting for key presses ⌨️")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool, output string) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{output}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
