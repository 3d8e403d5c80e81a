package config

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

const appName = "softboard"

type Config struct {
	Layout LayoutConfig
	Store  StoreConfig
	Input  InputConfig
	Daemon DaemonConfig
}

type LayoutConfig struct {
	HeightPortrait  float64 `mapstructure:"height_portrait"`
	HeightLandscape float64 `mapstructure:"height_landscape"`
	Rows            int
	File            string
}

type StoreConfig struct {
	Backend string
	Path    string
}

type InputConfig struct {
	Backend  string
	Sources  []string
	Keyboard string
	Hyprctl  string
	EvdevXML string `mapstructure:"evdev_xml"`
}

type DaemonConfig struct {
	Socket string
}

var (
	storeBackends   = []string{"sqlite", "json", "memory"}
	inputBackends   = []string{"hyprland", "static"}
	hyprctlRunners  = []string{"exec", "socket"}
	ErrInvalidValue = errors.New("invalid config value")
)

// Load reads $XDG_CONFIG_HOME/softboard/config.toml (or path, when set)
// and applies SOFTBOARD_ environment overrides. A missing file is fine.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("layout.height_portrait", keyboard.FixedLayoutHeight)
	v.SetDefault("layout.height_landscape", keyboard.FixedLayoutHeight)
	v.SetDefault("layout.rows", keyboard.NumberOfRows)
	v.SetDefault("layout.file", "")
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", filepath.Join(xdg.DataHome, appName, "states.db"))
	v.SetDefault("input.backend", "static")
	v.SetDefault("input.sources", []string{"English (US)"})
	v.SetDefault("input.keyboard", "")
	v.SetDefault("input.hyprctl", "exec")
	v.SetDefault("input.evdev_xml", "/usr/share/X11/xkb/rules/evdev.xml")
	v.SetDefault("daemon.socket", filepath.Join(xdg.RuntimeDir, appName+".sock"))

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if c.Layout.Rows <= 0 {
		return fmt.Errorf("layout.rows must be positive: %w", ErrInvalidValue)
	}
	if c.Layout.HeightPortrait <= 0 || c.Layout.HeightLandscape <= 0 {
		return fmt.Errorf("layout heights must be positive: %w", ErrInvalidValue)
	}
	if !oneOf(c.Store.Backend, storeBackends) {
		return fmt.Errorf("store.backend %q: %w", c.Store.Backend, ErrInvalidValue)
	}
	if c.Store.Backend != "memory" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for %s: %w", c.Store.Backend, ErrInvalidValue)
	}
	if !oneOf(c.Input.Backend, inputBackends) {
		return fmt.Errorf("input.backend %q: %w", c.Input.Backend, ErrInvalidValue)
	}
	if c.Input.Backend == "hyprland" && !oneOf(c.Input.Hyprctl, hyprctlRunners) {
		return fmt.Errorf("input.hyprctl %q: %w", c.Input.Hyprctl, ErrInvalidValue)
	}
	return nil
}

func (c Config) Geometry() keyboard.Geometry {
	return keyboard.Geometry{
		Height: map[keyboard.Orientation]float64{
			keyboard.Portrait:  c.Layout.HeightPortrait,
			keyboard.Landscape: c.Layout.HeightLandscape,
		},
		Rows: c.Layout.Rows,
	}
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
