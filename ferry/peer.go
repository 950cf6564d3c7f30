package ferry

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/TheusHen/ferry/ferry/transfer"
	"github.com/TheusHen/ferry/ferry/transport/quic"
)

// ErrNotListening is returned by Accept before Listen has succeeded.
var ErrNotListening = errors.New("peer is not listening")

// Options configures a Peer.
type Options struct {
	Transfer transfer.Config
	// Compress wraps every stream in LZ4 frames. Both peers must agree.
	Compress bool
	Level    transfer.CompressionLevel
}

// Peer runs one transfer per QUIC connection.
type Peer struct {
	opts     Options
	engine   *transfer.Engine
	log      *slog.Logger
	listener *quic.Listener
}

// NewPeer creates a peer. Call Listen before Accept; Dial needs no set-up.
func NewPeer(opts Options) *Peer {
	log := opts.Transfer.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Peer{
		opts:   opts,
		engine: transfer.NewEngine(opts.Transfer),
		log:    log,
	}
}

// Listen binds a QUIC listener on addr.
func (p *Peer) Listen(addr string) error {
	ln, err := quic.Listen(addr)
	if err != nil {
		return err
	}
	p.listener = ln
	return nil
}

func (p *Peer) Close() error {
	if p.listener == nil {
		return nil
	}
	return p.listener.Close()
}

func (p *Peer) ListenAddr() string {
	if p.listener == nil {
		return ""
	}
	return p.listener.AddrString()
}

// Accept waits for one connection and runs req on it.
func (p *Peer) Accept(ctx context.Context, req transfer.Request) (transfer.Stats, error) {
	if p.listener == nil {
		return transfer.Stats{}, ErrNotListening
	}
	conn, err := p.listener.Accept(ctx)
	if err != nil {
		return transfer.Stats{}, err
	}
	defer conn.Close()
	p.log.Debug("accepted connection", "remote", conn.RemoteAddr().String())
	return p.Run(ctx, conn, req)
}

// Dial connects to addr and runs req.
func (p *Peer) Dial(ctx context.Context, addr string, req transfer.Request) (transfer.Stats, error) {
	conn, err := quic.Dial(ctx, addr)
	if err != nil {
		return transfer.Stats{}, err
	}
	defer conn.Close()
	return p.Run(ctx, conn, req)
}

// Run performs req on a fresh stream of conn. The pushing side opens the
// stream; the pulling side accepts it.
func (p *Peer) Run(ctx context.Context, conn *quic.Conn, req transfer.Request) (transfer.Stats, error) {
	pushes := transfer.Pushes(req)
	st, err := conn.Stream(ctx, pushes)
	if err != nil {
		return transfer.Stats{}, err
	}
	defer st.Close()

	var (
		r io.Reader = st
		w io.Writer = st
	)
	if p.opts.Compress {
		cs, err := transfer.NewCompressedStream(st, st, p.opts.Level)
		if err != nil {
			return transfer.Stats{}, err
		}
		r, w = cs, cs
	}

	res, err := p.engine.Perform(req, r, w)
	if err != nil {
		st.CancelRead(0)
		return transfer.Stats{}, err
	}

	if !pushes {
		// Closing the connection now could drop the completion signal, so
		// wait for the pusher to finish its side of the stream first.
		if err := st.Close(); err != nil {
			return transfer.Stats{}, err
		}
		stop := context.AfterFunc(ctx, func() { st.CancelRead(0) })
		defer stop()
		_, _ = io.Copy(io.Discard, st)
	}
	return res.Stats, nil
}
