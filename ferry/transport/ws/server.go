package ws

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrServerClosed is returned by Accept once the server is closed.
var ErrServerClosed = errors.New("ws: server closed")

// Handler upgrades HTTP requests and hands the connections to Accept.
type Handler struct {
	upgrader websocket.Upgrader
	conns    chan *Conn
	done     chan struct{}
}

func NewHandler() *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(chan *Conn),
		done:  make(chan struct{}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn := NewConn(c)
	select {
	case h.conns <- conn:
	case <-h.done:
		conn.Close()
	case <-r.Context().Done():
		conn.Close()
	}
}

// Accept waits for the next upgraded connection.
func (h *Handler) Accept(ctx context.Context) (*Conn, error) {
	select {
	case c := <-h.conns:
		return c, nil
	case <-h.done:
		return nil, ErrServerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Server is an HTTP server that accepts WebSocket byte streams on one path.
type Server struct {
	handler *Handler
	http    *http.Server
	ln      net.Listener
	once    sync.Once
}

// Listen starts serving WebSocket upgrades for path on addr.
func Listen(addr, path string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	h := NewHandler()
	mux := http.NewServeMux()
	mux.Handle(path, h)
	s := &Server{
		handler: h,
		http:    &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		ln:      ln,
	}
	go s.http.Serve(ln)
	return s, nil
}

func (s *Server) Accept(ctx context.Context) (*Conn, error) { return s.handler.Accept(ctx) }

func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Close stops accepting upgrades. Connections already handed out stay open.
func (s *Server) Close() error {
	s.once.Do(func() { close(s.handler.done) })
	return s.http.Close()
}

// Dial connects to a ferry WebSocket endpoint such as ws://host:port/ferry.
func Dial(ctx context.Context, url string) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   64 * 1024,
		WriteBufferSize:  64 * 1024,
	}
	c, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewConn(c), nil
}
