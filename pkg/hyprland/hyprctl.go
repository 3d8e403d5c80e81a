package hyprland

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDeviceNotFound  = errors.New("device not found")
)

var errorMapper = map[*regexp.Regexp]error{
	regexp.MustCompile(`^ok`):                       nil,
	regexp.MustCompile(`layout idx out of range.*`): ErrIndexOutOfRange,
	regexp.MustCompile(`device not found`):          ErrDeviceNotFound,
}

// Runner executes a single hyprctl request and returns its output.
type Runner interface {
	Run(asJSON bool, args ...string) (string, error)
}

// ExecRunner shells out to the hyprctl binary.
type ExecRunner struct {
	Path string
}

func (r ExecRunner) Run(asJSON bool, args ...string) (string, error) {
	var stdout bytes.Buffer

	path := r.Path
	if path == "" {
		path = "hyprctl"
	}

	if asJSON {
		args = append([]string{"-j"}, args...)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	err := cmd.Run()
	outStr := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", fmt.Errorf("hyprctl: %w, stdout: %s", err, outStr)
	}

	return outStr, nil
}

// SocketRunner talks to hyprland's control socket directly.
type SocketRunner struct{}

func (SocketRunner) Run(asJSON bool, args ...string) (string, error) {
	conn, err := connect(hyprctlSocket)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	request := strings.Join(args, " ")
	if asJSON {
		request = "j/" + request
	}

	if _, err := io.WriteString(conn, request); err != nil {
		return "", fmt.Errorf("write to hyprctl socket: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		return "", fmt.Errorf("read response from hyprctl socket: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

type Hyprctl struct {
	runner Runner
}

func NewHyprctl(runner Runner) *Hyprctl {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Hyprctl{runner: runner}
}

func (h *Hyprctl) SwitchToLayout(keyboard string, idx int) error {
	outStr, err := h.runner.Run(false, "switchxkblayout", keyboard, strconv.Itoa(idx))
	if err != nil {
		return err
	}

	for re, mappedErr := range errorMapper {
		if re.MatchString(outStr) {
			return mappedErr
		}
	}

	return fmt.Errorf("unknown hyprctl error: %s", outStr)
}

func (h *Hyprctl) GetKeyboards() ([]Keyboard, error) {
	outStr, err := h.runner.Run(true, "devices")
	if err != nil {
		return nil, err
	}

	var devs devices
	if err := json.Unmarshal([]byte(outStr), &devs); err != nil {
		return nil, fmt.Errorf("unmarshal: %w, (hyprctl: %s)", err, outStr)
	}

	out := make([]Keyboard, 0, len(devs.Keyboards))
	for _, k := range devs.Keyboards {
		out = append(out, k.ToKeyboard())
	}

	return out, nil
}

// NextLayout moves device to its next configured xkb layout, wrapping
// around. An empty device name picks the main keyboard.
func (h *Hyprctl) NextLayout(device string) (Layout, error) {
	keyboards, err := h.GetKeyboards()
	if err != nil {
		return Layout{}, fmt.Errorf("get keyboards: %w", err)
	}

	kb, ok := pickKeyboard(keyboards, device)
	if !ok {
		return Layout{}, fmt.Errorf("keyboard %q: %w", device, ErrDeviceNotFound)
	}
	if len(kb.Layouts) == 0 {
		return Layout{}, fmt.Errorf("keyboard %q has no layouts: %w", kb.Name, ErrIndexOutOfRange)
	}

	next := (kb.ActiveLayoutIndex + 1) % len(kb.Layouts)
	if err := h.SwitchToLayout(kb.Name, next); err != nil {
		return Layout{}, fmt.Errorf("switch %q to %d: %w", kb.Name, next, err)
	}

	return kb.Layout(next), nil
}

func pickKeyboard(keyboards []Keyboard, device string) (Keyboard, bool) {
	for _, k := range keyboards {
		if device != "" && k.Name == device {
			return k, true
		}
		if device == "" && k.Main {
			return k, true
		}
	}
	if device == "" && len(keyboards) > 0 {
		return keyboards[0], true
	}
	return Keyboard{}, false
}
