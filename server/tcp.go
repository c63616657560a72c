// Package server exposes the command registry on a localhost TCP
// socket. Each connection carries a stream of length-prefixed JSON
// request/response frames; the server holds no policy of its own.
package server

import (
	"errors"
	"io"
	"net"
	"sync"

	"foxus/app/command"
	"foxus/logger"
	"foxus/network"

	"github.com/google/uuid"
)

type TCPServer struct {
	registry *command.Registry
	listener net.Listener
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

func NewTCPServer(registry *command.Registry) *TCPServer {
	return &TCPServer{registry: registry}
}

// Listen binds the address and starts the accept loop in the
// background.
func (s *TCPServer) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	logger.Infof("command server listening on %s", addr)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr reports the bound address, useful when listening on port 0.
func (s *TCPServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *TCPServer) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed {
				logger.Errorf("accept: %v", err)
			}
			return
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *TCPServer) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.NewString()
	logger.Infof("client connected id=%s remote=%s", connID, conn.RemoteAddr())

	for {
		var req command.Request
		if err := network.ReadJSON(conn, &req); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Infof("client %s read: %v", connID, err)
			}
			return
		}
		resp := command.Dispatch(s.registry, req)
		if err := network.WriteJSON(conn, resp); err != nil {
			logger.Errorf("client %s write: %v", connID, err)
			return
		}
	}
}

// Close stops accepting and waits for in-flight connections to drain.
func (s *TCPServer) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.wg.Wait()
	return err
}
