package quic

import (
	"context"
	"io"
	"testing"
	"time"
)

func TestStreamOpenAccept(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept(ctx)
		if err != nil {
			t.Errorf("Accept: %v", err)
			got <- ""
			return
		}
		defer conn.Close()
		st, err := conn.Stream(ctx, false)
		if err != nil {
			t.Errorf("AcceptStream: %v", err)
			got <- ""
			return
		}
		b, err := io.ReadAll(st)
		if err != nil {
			t.Errorf("ReadAll: %v", err)
		}
		got <- string(b)
	}()

	conn, err := Dial(ctx, ln.AddrString())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	st, err := conn.Stream(ctx, true)
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	if _, err := st.Write([]byte("first bytes announce the stream")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if s := <-got; s != "first bytes announce the stream" {
		t.Fatalf("server read %q", s)
	}
}

func TestTLSConfigs(t *testing.T) {
	srv, err := NewServerTLSConfig()
	if err != nil {
		t.Fatalf("NewServerTLSConfig: %v", err)
	}
	if len(srv.Certificates) != 1 || srv.NextProtos[0] != ALPN {
		t.Fatalf("unexpected server config")
	}
	again, err := NewServerTLSConfig()
	if err != nil {
		t.Fatalf("NewServerTLSConfig: %v", err)
	}
	if &again.Certificates[0].Certificate[0][0] != &srv.Certificates[0].Certificate[0][0] {
		t.Fatalf("certificate should be generated once per process")
	}

	cli, err := NewClientTLSConfig()
	if err != nil {
		t.Fatalf("NewClientTLSConfig: %v", err)
	}
	if !cli.InsecureSkipVerify || cli.NextProtos[0] != ALPN || len(cli.Certificates) != 0 {
		t.Fatalf("unexpected client config")
	}
}
