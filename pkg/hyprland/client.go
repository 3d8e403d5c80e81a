package hyprland

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
)

var ErrNotRunning = errors.New("hyprland might not be running")

// Client reads hyprland's event socket line by line, e.g.
// "activewindow>>kitty,~/src".
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from hypr socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

func Connect() (*Client, error) {
	conn, err := connect(eventSocket)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}
