package inputsource

import (
	"codeberg.org/miketth/softboard/pkg/hyprland"
	"codeberg.org/miketth/softboard/pkg/xkblayouts"
	"fmt"
	"go.uber.org/zap"
)

type LayoutSwitcher interface {
	NextLayout(device string) (hyprland.Layout, error)
}

// Hyprland switches the xkb layout of a hyprland keyboard device.
type Hyprland struct {
	switcher LayoutSwitcher
	registry *xkblayouts.Registry
	device   string
	log      *zap.SugaredLogger
}

func NewHyprland(
	switcher LayoutSwitcher,
	registry *xkblayouts.Registry,
	device string,
	log *zap.SugaredLogger,
) *Hyprland {
	return &Hyprland{
		switcher: switcher,
		registry: registry,
		device:   device,
		log:      log,
	}
}

func (h *Hyprland) NextInputSource() (string, error) {
	layout, err := h.switcher.NextLayout(h.device)
	if err != nil {
		return "", fmt.Errorf("next layout: %w", err)
	}

	if h.registry == nil {
		return layout.Code, nil
	}

	h.log.Debugw("switched xkb layout", "layout", layout.Code, "variant", layout.Variant, "short", h.registry.ShortName(layout.Code))
	return h.registry.PrettyName(layout.Code, layout.Variant), nil
}
