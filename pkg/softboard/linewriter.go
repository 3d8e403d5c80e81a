package softboard

import (
	"fmt"
	"go.uber.org/zap"
	"io"
	"strconv"
	"sync"
	"time"
)

const defaultWriteTimeout = 2 * time.Second

// deadlineWriter is implemented by net.Conn.
type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

// LineWriter forwards host commands and state changes to every attached
// client as protocol lines. It is a TextSurface and an Observer.
//
// Writes happen while the session is locked, so clients that support write
// deadlines get writeTimeout to take a line and are dropped after that.
type LineWriter struct {
	clients      map[string]io.Writer
	writeTimeout time.Duration
	log          *zap.SugaredLogger
	lock         sync.Mutex
}

type LineWriterOption func(*LineWriter)

func WithWriteTimeout(d time.Duration) LineWriterOption {
	return func(w *LineWriter) {
		w.writeTimeout = d
	}
}

func NewLineWriter(log *zap.SugaredLogger, opts ...LineWriterOption) *LineWriter {
	w := &LineWriter{
		clients:      make(map[string]io.Writer),
		writeTimeout: defaultWriteTimeout,
		log:          log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *LineWriter) Attach(id string, out io.Writer) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.clients[id] = out
}

func (w *LineWriter) Detach(id string) {
	w.lock.Lock()
	defer w.lock.Unlock()
	delete(w.clients, id)
}

func (w *LineWriter) InsertText(text string) error {
	return w.broadcast("insert>>" + strconv.Quote(text) + "\n")
}

func (w *LineWriter) DeleteBackward() error {
	return w.broadcast("delete\n")
}

func (w *LineWriter) InputSourceChanged(name string) {
	if err := w.broadcast(fmt.Sprintf("switchinput>>%s\n", name)); err != nil {
		w.log.Warnw("broadcast input source", "error", err)
	}
}

func (w *LineWriter) StateChanged(snap Snapshot) {
	if err := w.broadcast(formatSnapshot(snap)); err != nil {
		w.log.Warnw("broadcast state", "error", err)
	}
}

// broadcast drops clients that fail to receive the line. Only a failure to
// reach any client is reported.
func (w *LineWriter) broadcast(line string) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if len(w.clients) == 0 {
		return nil
	}

	delivered := 0
	var lastErr error
	for id, out := range w.clients {
		if err := w.send(out, line); err != nil {
			w.log.Warnw("dropping client", "client", id, "error", err)
			delete(w.clients, id)
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("write to clients: %w", lastErr)
	}
	return nil
}

func (w *LineWriter) send(out io.Writer, text string) error {
	dw, ok := out.(deadlineWriter)
	if !ok || w.writeTimeout <= 0 {
		_, err := io.WriteString(out, text)
		return err
	}

	if err := dw.SetWriteDeadline(time.Now().Add(w.writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}
	// the same conn also carries replies that must not inherit the deadline
	if err := dw.SetWriteDeadline(time.Time{}); err != nil {
		return fmt.Errorf("clear write deadline: %w", err)
	}
	return nil
}

// attach adds a client and sends it snap first. Callers hold the session
// lock, so no state change can slip in between.
func (w *LineWriter) attach(id string, out io.Writer, snap Snapshot) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if err := w.send(out, formatSnapshot(snap)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	w.clients[id] = out
	return nil
}
