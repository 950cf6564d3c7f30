// Command ferry sends one file to a peer (push) or receives one (pull) over QUIC,
// WebSocket or plain TCP. Either side may listen or dial; both sides must
// agree on the transport and on -compress.
//
//	ferry push [-transport quic|ws|tcp] [-addr host:port] [-listen] [-compress] <source>
//	ferry pull [-transport quic|ws|tcp] [-addr host:port] [-listen] [-compress] <destination>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/TheusHen/ferry/ferry/transfer"
	"github.com/TheusHen/ferry/internal/config"
	"github.com/TheusHen/ferry/internal/logger"
)

var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ferry push|pull [flags] <path>\n\nRun 'ferry push -h' for flags.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var newRequest func(path string) transfer.Request
	switch os.Args[1] {
	case "push":
		newRequest = func(path string) transfer.Request { return transfer.Push{Source: path} }
	case "pull":
		newRequest = func(path string) transfer.Request { return transfer.Pull{Destination: path} }
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	cfg := config.New()

	fs := flag.NewFlagSet("ferry "+os.Args[1], flag.ExitOnError)
	transportFlag := fs.String("transport", "", "Transport: quic, ws or tcp (default from FERRY_TRANSPORT or quic)")
	addrFlag := fs.String("addr", "", "Address to listen on or dial (default from FERRY_ADDR or "+cfg.Addr()+")")
	listen := fs.Bool("listen", false, "Wait for the peer to connect instead of dialing it")
	compress := fs.Bool("compress", false, "Wrap the stream in LZ4 frames (the peer must use it too)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	cfg = cfg.WithOverrides(*transportFlag, *addrFlag, *compress, *debug)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.LogFile(), cfg.Debug())

	// Cancelled on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pterm.Info.Println(fmt.Sprintf("ferry v%s", version))

	req := newRequest(fs.Arg(0))
	log := logger.Log.With(
		"transfer_id", uuid.NewString(),
		"op", os.Args[1],
		"path", req.Path(),
		"transport", cfg.Transport(),
		"addr", cfg.Addr(),
	)

	r := &runner{cfg: cfg, listen: *listen, log: log}
	stats, err := r.run(ctx, req)
	if err != nil {
		log.Error("transfer failed", "err", err)
		os.Exit(1)
	}

	log.Info("transfer complete", "bytes", stats.Bytes)
	color.New(color.FgGreen, color.Bold).Println(stats.String())
}
