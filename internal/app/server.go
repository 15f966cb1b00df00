package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"hanswap/internal/common"
	"hanswap/pkg/ime"
)

const maxLineSize = 1024 * 1024

// Server answers conversion requests on a unix socket. Each request is one
// line of text and each response is the converted line.
type Server struct {
	path     string
	listener net.Listener
	conv     atomic.Pointer[ime.Converter]
	log      *slog.Logger

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	wg     sync.WaitGroup
	closed bool
}

// NewServer replaces any stale socket at path and starts listening.
func NewServer(path string, conv *ime.Converter, log *slog.Logger) (*Server, error) {
	if path == "" {
		return nil, errors.New("socket path is empty")
	}
	if err := common.EnsureSocketDir(path); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o660); err != nil && !errors.Is(err, os.ErrNotExist) {
		listener.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("chmod socket: %w", err)
	}

	s := &Server{
		path:     path,
		listener: listener,
		log:      log.With("socket", path),
		conns:    make(map[net.Conn]struct{}),
	}
	s.conv.Store(conv)
	return s, nil
}

func (s *Server) Addr() string { return s.path }

// Swap replaces the converter used for requests that arrive afterwards.
func (s *Server) Swap(conv *ime.Converter) {
	s.conv.Store(conv)
	s.log.Info("converter replaced", "deny", len(conv.DenyList()))
}

// Serve accepts connections until ctx is done or Close is called. It
// returns after every connection handler has finished.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	s.log.Info("listening")
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				s.log.Info("stopped")
				return nil
			}
			s.Close()
			s.wg.Wait()
			return fmt.Errorf("accept: %w", err)
		}
		if !s.track(conn) {
			conn.Close()
			continue
		}
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			if err := s.handle(conn); err != nil {
				s.log.Warn("connection failed", "error", err)
			}
		}()
	}
}

// Close stops the listener, drops open connections and removes the socket.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.listener.Close()
	_ = os.Remove(s.path)
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) handle(conn net.Conn) error {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	writer := bufio.NewWriter(conn)
	for scanner.Scan() {
		text := scanner.Text()
		response := s.conv.Load().ConvertText(text)
		s.log.Debug("converted", "in", text, "out", response)
		if _, err := writer.WriteString(response); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
