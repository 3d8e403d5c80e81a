package main

import (
	"codeberg.org/miketth/softboard/pkg/config"
	"codeberg.org/miketth/softboard/pkg/hyprland"
	"codeberg.org/miketth/softboard/pkg/inputsource"
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"codeberg.org/miketth/softboard/pkg/layoutfile"
	"codeberg.org/miketth/softboard/pkg/softboard"
	"codeberg.org/miketth/softboard/pkg/statestore/json"
	"codeberg.org/miketth/softboard/pkg/statestore/memory"
	"codeberg.org/miketth/softboard/pkg/statestore/sqlite"
	"codeberg.org/miketth/softboard/pkg/xkblayouts"
	"context"
	"fmt"
	"go.uber.org/zap"
	"os"
	"path/filepath"
)

func buildLayout(cfg config.Config) (*keyboard.Layout, error) {
	layout, err := keyboard.NewLayout(keyboard.WithGeometry(cfg.Geometry()))
	if err != nil {
		return nil, err
	}

	if cfg.Layout.File == "" {
		return layout, nil
	}

	file, err := layoutfile.Load(cfg.Layout.File)
	if err != nil {
		return nil, fmt.Errorf("load layout file: %w", err)
	}
	if err := file.Apply(layout); err != nil {
		return nil, fmt.Errorf("apply layout file: %w", err)
	}

	return layout, nil
}

// managedStore is a state store plus whatever has to run alongside it until
// shutdown.
type managedStore struct {
	softboard.StateStore
	run func(ctx context.Context) error
}

func openStore(cfg config.Config, log *zap.SugaredLogger) (*managedStore, error) {
	if cfg.Store.Backend != "memory" {
		err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755)
		if err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	switch cfg.Store.Backend {
	case "sqlite":
		store, err := sqlite.NewStateStore(cfg.Store.Path, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return &managedStore{
			StateStore: store,
			run: func(ctx context.Context) error {
				<-ctx.Done()
				if err := store.Close(); err != nil {
					return fmt.Errorf("close sqlite store: %w", err)
				}
				return ctx.Err()
			},
		}, nil
	case "json":
		store, err := json.NewStateStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return &managedStore{StateStore: store, run: store.SaveLooper}, nil
	case "memory":
		return &managedStore{
			StateStore: memory.NewStateStore(),
			run:        func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("store backend %q: %w", cfg.Store.Backend, config.ErrInvalidValue)
	}
}

func newInputs(cfg config.Config, log *zap.SugaredLogger) (softboard.InputSourceSwitcher, error) {
	switch cfg.Input.Backend {
	case "static":
		return inputsource.NewStatic(cfg.Input.Sources...), nil
	case "hyprland":
		var runner hyprland.Runner = hyprland.ExecRunner{}
		if cfg.Input.Hyprctl == "socket" {
			runner = hyprland.SocketRunner{}
		}

		registry, err := xkblayouts.ParseLayouts(cfg.Input.EvdevXML)
		if err != nil {
			// layout codes are still usable as names
			log.Warnw("could not parse xkb layouts", "path", cfg.Input.EvdevXML, "error", err)
		}

		return inputsource.NewHyprland(hyprland.NewHyprctl(runner), registry, cfg.Input.Keyboard, log), nil
	default:
		return nil, fmt.Errorf("input backend %q: %w", cfg.Input.Backend, config.ErrInvalidValue)
	}
}

// followWindows feeds hyprland's activewindow events into the session so
// each application gets its own keyboard state back.
func followWindows(ctx context.Context, session *softboard.Session) error {
	client, err := hyprland.Connect()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	return session.ProcessLines(ctx, client, nil)
}
