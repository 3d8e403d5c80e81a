package softboard

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"codeberg.org/miketth/softboard/pkg/layoutfile"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrInvalidLine = errors.New("invalid line")

// ProcessLines reads events from listener until it is exhausted or ctx is
// done. Replies to client requests and malformed lines are written to reply,
// which may be nil for event streams that expect none.
func (s *Session) ProcessLines(ctx context.Context, listener EventListener, reply io.Writer) error {
	for {
		resultCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			line, err := listener.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- line
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-resultCh:
			err := s.processLine(line, reply)
			switch {
			case errors.Is(err, ErrInvalidLine), errors.Is(err, ErrUnknownKey), errors.Is(err, keyboard.ErrInvalidKey):
				s.log.Warnw("rejected line", "line", line, "error", err)
				if reply != nil {
					if _, werr := fmt.Fprintf(reply, "error>>%s\n", err); werr != nil {
						return fmt.Errorf("write reply: %w", werr)
					}
				}
			case err != nil:
				return fmt.Errorf("process line: %w", err)
			}
		case err := <-errCh:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (s *Session) processLine(line string, reply io.Writer) error {
	evType, evData, _ := strings.Cut(strings.TrimSpace(line), ">>")

	switch evType {
	case "press":
		if evData == "" {
			return fmt.Errorf("press without key: %w", ErrInvalidLine)
		}
		_, err := s.PressNamed(evData)
		return err
	case "key":
		row, col, err := parsePosition(evData)
		if err != nil {
			return err
		}
		_, err = s.PressAt(row, col)
		return err
	case "orientation":
		o, err := keyboard.ParseOrientation(evData)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLine, err)
		}
		return s.SetOrientation(o)
	case "app":
		return s.SwitchApp(evData)
	case "activewindow":
		// hyprland sends class,title
		class, _, _ := strings.Cut(evData, ",")
		return s.SwitchApp(class)
	case "rows":
		if reply == nil {
			return nil
		}
		snap, err := s.Snapshot()
		if err != nil {
			return err
		}
		return writeSnapshot(reply, snap)
	case "":
		return nil
	}

	s.log.Debugw("ignoring event", "type", evType)
	return nil
}

func parsePosition(data string) (int, int, error) {
	rowStr, colStr, ok := strings.Cut(data, ",")
	if !ok {
		return 0, 0, fmt.Errorf("position %q: %w", data, ErrInvalidLine)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return 0, 0, fmt.Errorf("row %q: %w", rowStr, ErrInvalidLine)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return 0, 0, fmt.Errorf("column %q: %w", colStr, ErrInvalidLine)
	}
	return row, col, nil
}

func formatSnapshot(snap Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "state>>%s\n", snap.State)
	fmt.Fprintf(&b, "rowheight>>%s\n", strconv.FormatFloat(snap.RowHeight, 'f', -1, 64))
	for i, row := range snap.Rows {
		fmt.Fprintf(&b, "row>>%d>>%s\n", i, layoutfile.EncodeRow(row))
	}
	return b.String()
}

func writeSnapshot(w io.Writer, snap Snapshot) error {
	if _, err := io.WriteString(w, formatSnapshot(snap)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
