package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"protod.szuro.net/internal/logger"
	"protod.szuro.net/pkg/protocol"
	"protod.szuro.net/pkg/rpc"
)

// Server accepts monitoring-server connections on a unix socket and runs one
// session per connection. Sessions are independent; a reference loaded on
// one connection does not resolve on another.
type Server struct {
	plugin protocol.Plugin
	socket string
	enc    rpc.Encoding

	mu       sync.Mutex
	listener net.Listener
	conns    sync.WaitGroup
}

func NewServer(plugin protocol.Plugin, socket string, enc rpc.Encoding) *Server {
	if enc == nil {
		enc = rpc.JSONEncoding{}
	}
	return &Server{plugin: plugin, socket: socket, enc: enc}
}

// ListenAndServe binds the socket and serves until ctx is cancelled or
// Shutdown is called. A stale socket file from a previous run is removed
// before binding.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := os.Remove(s.socket); err != nil && !os.IsNotExist(err) {
		return err
	}
	listener, err := net.Listen("unix", s.socket)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	logger.Info("Listening", slog.String("socket", s.socket), slog.String("protocol", s.plugin.Protocol()))

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.conns.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Shutdown stops accepting and waits for in-flight connections.
func (s *Server) Shutdown() {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener.Close()
	}
	s.conns.Wait()
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	session := NewSession(s.plugin)
	framed := rpc.NewConn(conn)

	for {
		payload, err := framed.ReadMessage()
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				logger.Warn("Connection read failed", slog.Any("error", err))
			}
			return
		}
		out := session.HandlePayload(ctx, s.enc, payload)
		if err := framed.WriteMessage(out); err != nil {
			logger.Warn("Connection write failed", slog.Any("error", err))
			return
		}
	}
}
