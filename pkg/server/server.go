// Package server streams rendered frames to browsers over websockets.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taigrr/glyphcube/pkg/anim"
	"github.com/taigrr/glyphcube/pkg/render"
)

//go:embed index.html
var indexHTML []byte

const writeWait = 2 * time.Second

// Controller is the part of the scheduler the server drives.
type Controller interface {
	Config() render.Config
	Reconfigure(render.Config) error
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger instead of the shared one.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCheckOrigin sets the origin check used when upgrading connections.
// By default all origins are allowed.
func WithCheckOrigin(f func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = f
	}
}

// Server is a websocket display surface. Publish broadcasts a frame to
// every connected client; clients may send config messages back.
type Server struct {
	ctrl     Controller
	upgrader websocket.Upgrader
	logger   *slog.Logger

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	latestMu sync.Mutex
	latest   []byte
}

// New creates a server driving ctrl.
func New(ctrl Controller, opts ...Option) *Server {
	s := &Server{
		ctrl: ctrl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  anim.Logger(),
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the page at / and the
// websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Publish encodes f once and sends it to every client. Clients whose write
// fails are dropped. It matches anim.Publisher.
func (s *Server) Publish(f *render.Frame) {
	data, err := json.Marshal(NewFrameMessage(f))
	if err != nil {
		s.logger.Warn("encode frame", "error", err)
		return
	}

	s.latestMu.Lock()
	s.latest = data
	s.latestMu.Unlock()

	s.broadcast(data)
}

func (s *Server) broadcast(data []byte) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for client, mu := range s.clients {
		if err := write(client, mu, data); err != nil {
			s.logger.Warn("websocket write", "remote", client.RemoteAddr(), "error", err)
			failed = append(failed, client)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, client := range failed {
			client.Close()
			delete(s.clients, client)
		}
		s.clientsMu.Unlock()
	}
}

func write(conn *websocket.Conn, mu *sync.Mutex, data []byte) error {
	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func writeJSON(conn *websocket.Conn, mu *sync.Mutex, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return write(conn, mu, data)
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	mu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = mu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()
	s.logger.Info("client connected", "remote", conn.RemoteAddr())

	if err := writeJSON(conn, mu, ConfigMessage{Type: TypeConfig, Config: s.ctrl.Config()}); err != nil {
		return
	}
	s.latestMu.Lock()
	latest := s.latest
	s.latestMu.Unlock()
	if latest != nil {
		if err := write(conn, mu, latest); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("client disconnected", "remote", conn.RemoteAddr(), "error", err)
			return
		}
		if reply := s.handleMessage(data); reply != nil {
			if err := writeJSON(conn, mu, reply); err != nil {
				return
			}
		}
	}
}

// handleMessage applies one client message and returns the reply, if any.
func (s *Server) handleMessage(data []byte) any {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return ErrorMessage{Type: TypeError, Error: fmt.Sprintf("decode message: %v", err)}
	}

	switch msg.Type {
	case TypeConfig:
		cfg := s.ctrl.Config()
		if len(msg.Config) > 0 {
			if err := json.Unmarshal(msg.Config, &cfg); err != nil {
				return ErrorMessage{Type: TypeError, Error: fmt.Sprintf("decode config: %v", err)}
			}
		}
		if err := s.ctrl.Reconfigure(cfg); err != nil {
			return ErrorMessage{Type: TypeError, Error: err.Error()}
		}
		return ConfigMessage{Type: TypeConfig, Config: cfg}
	default:
		return ErrorMessage{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}
