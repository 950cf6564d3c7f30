// Package ws carries ferry transfers over WebSocket connections.
//
// Conn turns the message-oriented WebSocket into a plain byte stream: every
// Write becomes one binary message and Read drains messages back to back, so
// message boundaries carry no meaning for the transfer protocol.
package ws

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeGracePeriod = time.Second

// Conn is a WebSocket connection exposed as an io.ReadWriteCloser.
// One goroutine may read while another writes.
type Conn struct {
	ws *websocket.Conn
	r  io.Reader // current inbound message

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps an established WebSocket connection.
func NewConn(c *websocket.Conn) *Conn {
	return &Conn{ws: c}
}

func (c *Conn) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			typ, r, err := c.ws.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if typ != websocket.BinaryMessage {
				continue
			}
			c.r = r
		}
		n, err := c.r.Read(p)
		if errors.Is(err, io.EOF) {
			c.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *Conn) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close sends a normal closure frame and closes the underlying connection.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
