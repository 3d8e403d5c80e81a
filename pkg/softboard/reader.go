package softboard

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader is an EventListener over any byte stream, such as a client
// connection on the daemon socket.
type LineReader struct {
	reader *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator. A final line
// without a newline is still returned before io.EOF.
func (r *LineReader) ReadLine() (string, error) {
	str, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && str != "" {
			return strings.TrimSuffix(str, "\r"), nil
		}
		return "", fmt.Errorf("read line: %w", err)
	}
	str = strings.TrimSuffix(str, "\n")
	return strings.TrimSuffix(str, "\r"), nil
}
