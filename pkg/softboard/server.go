package softboard

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"net"
	"os"
	"path/filepath"
	"sync"
)

// Server accepts keyboard clients on a unix socket. Every client may send
// protocol lines and receives everything the LineWriter broadcasts.
type Server struct {
	listener net.Listener
	session  *Session
	lines    *LineWriter
	log      *zap.SugaredLogger

	wg sync.WaitGroup
}

func NewServer(socket string, session *Session, lines *LineWriter, log *zap.SugaredLogger) (*Server, error) {
	err := os.MkdirAll(filepath.Dir(socket), 0700)
	if err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}

	// stale socket from a previous run
	if err := os.Remove(socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove old socket: %w", err)
	}

	listener, err := net.Listen("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	return &Server{
		listener: listener,
		session:  session,
		lines:    lines,
		log:      log,
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts clients until ctx is done or accepting fails, then
// disconnects every client and waits for its handler to return.
func (s *Server) Serve(ctx context.Context) error {
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-serveCtx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			cancel()
			s.wg.Wait()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(serveCtx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	id := uuid.NewString()
	log := s.log.With("client", id)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	err := s.session.withSnapshot(func(snap Snapshot) error {
		return s.lines.attach(id, conn, snap)
	})
	if err != nil {
		log.Debugw("client left early", "error", err)
		return
	}
	defer s.lines.Detach(id)
	log.Debug("client connected")

	err = s.session.ProcessLines(ctx, NewLineReader(conn), conn)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, net.ErrClosed):
		log.Debug("client disconnected")
	default:
		log.Warnw("client failed", "error", err)
	}
}
