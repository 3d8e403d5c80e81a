package hyprland

import (
	"fmt"
	"github.com/adrg/xdg"
	"net"
	"os"
	"path/filepath"
)

type socketType int

const (
	hyprctlSocket socketType = iota
	eventSocket
)

var socketNames = map[socketType]string{
	hyprctlSocket: ".socket.sock",
	eventSocket:   ".socket2.sock",
}

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

// getSocketPath prefers $XDG_RUNTIME_DIR/hypr and falls back to /tmp/hypr
// used by older hyprland releases.
func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	name, ok := socketNames[sock]
	if !ok {
		return "", fmt.Errorf("unknown socket type: %d", sock)
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, name),
		filepath.Join("/tmp/hypr", signature, name),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return candidates[0], nil
}
