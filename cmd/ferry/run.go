package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/TheusHen/ferry/ferry"
	"github.com/TheusHen/ferry/ferry/transfer"
	"github.com/TheusHen/ferry/ferry/transport/ws"
	"github.com/TheusHen/ferry/internal/config"
)

// runner establishes the configured transport and runs one transfer on it.
type runner struct {
	cfg    *config.Config
	listen bool
	log    *slog.Logger
}

func (r *runner) transferConfig() transfer.Config {
	return transfer.Config{
		BufferSize: r.cfg.BufferSize(),
		Progress:   progressLogger(r.log),
		Logger:     r.log,
	}
}

func (r *runner) run(ctx context.Context, req transfer.Request) (transfer.Stats, error) {
	switch r.cfg.Transport() {
	case config.TransportQUIC:
		return r.runQUIC(ctx, req)
	case config.TransportWS:
		conn, err := r.connectWS(ctx)
		if err != nil {
			return transfer.Stats{}, err
		}
		return r.runStream(ctx, conn, req)
	case config.TransportTCP:
		conn, err := r.connectTCP(ctx)
		if err != nil {
			return transfer.Stats{}, err
		}
		return r.runStream(ctx, conn, req)
	default:
		return transfer.Stats{}, fmt.Errorf("unknown transport %q", r.cfg.Transport())
	}
}

func (r *runner) runQUIC(ctx context.Context, req transfer.Request) (transfer.Stats, error) {
	peer := ferry.NewPeer(ferry.Options{
		Transfer: r.transferConfig(),
		Compress: r.cfg.Compress(),
		Level:    transfer.CompressionFast,
	})
	if !r.listen {
		r.log.Info("dialing peer")
		return peer.Dial(ctx, r.cfg.Addr(), req)
	}
	if err := peer.Listen(r.cfg.Addr()); err != nil {
		return transfer.Stats{}, err
	}
	defer peer.Close()
	r.log.Info("waiting for peer", "listen", peer.ListenAddr())
	return peer.Accept(ctx, req)
}

func (r *runner) connectWS(ctx context.Context) (io.ReadWriteCloser, error) {
	if !r.listen {
		url := "ws://" + r.cfg.Addr() + r.cfg.WSPath()
		r.log.Info("dialing peer", "url", url)
		return ws.Dial(ctx, url)
	}
	srv, err := ws.Listen(r.cfg.Addr(), r.cfg.WSPath())
	if err != nil {
		return nil, err
	}
	defer srv.Close()
	r.log.Info("waiting for peer", "listen", srv.Addr().String(), "path", r.cfg.WSPath())
	return srv.Accept(ctx)
}

func (r *runner) connectTCP(ctx context.Context) (io.ReadWriteCloser, error) {
	if !r.listen {
		r.log.Info("dialing peer")
		var d net.Dialer
		return d.DialContext(ctx, "tcp", r.cfg.Addr())
	}
	ln, err := net.Listen("tcp", r.cfg.Addr())
	if err != nil {
		return nil, err
	}
	defer ln.Close()
	r.log.Info("waiting for peer", "listen", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	return ln.Accept()
}

// runStream runs req on a connected stream. The transfer itself cannot be
// cancelled, so an interrupt closes the connection underneath it.
func (r *runner) runStream(ctx context.Context, conn io.ReadWriteCloser, req transfer.Request) (transfer.Stats, error) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var (
		rd io.Reader = conn
		wr io.Writer = conn
	)
	if r.cfg.Compress() {
		cs, err := transfer.NewCompressedStream(conn, conn, transfer.CompressionFast)
		if err != nil {
			return transfer.Stats{}, err
		}
		rd, wr = cs, cs
	}

	res, err := transfer.NewEngine(r.transferConfig()).Perform(req, rd, wr)
	if err != nil {
		return transfer.Stats{}, err
	}
	return res.Stats, nil
}

// progressLogger logs payload progress at debug level in 10% steps.
func progressLogger(log *slog.Logger) transfer.ProgressFunc {
	var next uint64
	return func(ev transfer.ProgressEvent) {
		if ev.Total == 0 {
			return
		}
		pct := ev.Bytes * 100 / ev.Total
		if pct < next {
			return
		}
		log.Debug("progress", "op", ev.Operation, "bytes", ev.Bytes, "total", ev.Total, "percent", pct)
		next = pct/10*10 + 10
	}
}
