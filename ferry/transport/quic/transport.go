// Package quic carries ferry transfers over QUIC streams.
//
// One transfer uses one bidirectional stream. QUIC only announces a stream
// to the peer once data is written on it, so the pushing side opens the
// stream and the pulling side accepts it.
package quic

import (
	"context"
	"net"

	q "github.com/quic-go/quic-go"
)

// Listener accepts QUIC connections.
type Listener struct {
	inner *q.Listener
}

// Listen starts a QUIC listener on addr with a self-signed certificate.
func Listen(addr string) (*Listener, error) {
	tlsConf, err := NewServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	conn, err := l.inner.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return &Conn{inner: conn}, nil
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) AddrString() string {
	if l.inner == nil {
		return ""
	}
	return l.inner.Addr().String()
}

func (l *Listener) Close() error { return l.inner.Close() }

// Dial opens a QUIC connection to addr.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	tlsConf, err := NewClientTLSConfig()
	if err != nil {
		return nil, err
	}
	conn, err := q.DialAddr(ctx, addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	return &Conn{inner: conn}, nil
}

// Conn is an established QUIC connection.
type Conn struct {
	inner q.Connection
}

// OpenStream opens a stream for the side that writes first.
func (c *Conn) OpenStream(ctx context.Context) (q.Stream, error) {
	return c.inner.OpenStreamSync(ctx)
}

// AcceptStream waits for the peer to open a stream and send its first bytes.
func (c *Conn) AcceptStream(ctx context.Context) (q.Stream, error) {
	return c.inner.AcceptStream(ctx)
}

// Stream opens the stream when initiate is set and accepts it otherwise.
func (c *Conn) Stream(ctx context.Context, initiate bool) (q.Stream, error) {
	if initiate {
		return c.OpenStream(ctx)
	}
	return c.AcceptStream(ctx)
}

// Done is closed once the connection is gone, locally or by the peer.
func (c *Conn) Done() <-chan struct{} { return c.inner.Context().Done() }

func (c *Conn) RemoteAddr() net.Addr { return c.inner.RemoteAddr() }

// Close closes the connection without an error code.
func (c *Conn) Close() error { return c.inner.CloseWithError(0, "") }
