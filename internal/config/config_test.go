package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"FERRY_TRANSPORT", "FERRY_ADDR", "FERRY_BUFFER_SIZE", "FERRY_COMPRESS", "FERRY_LOG_FILE", "FERRY_DEBUG", "FERRY_WS_PATH"} {
		t.Setenv(k, "")
	}

	cfg := New()
	if cfg.Transport() != TransportQUIC || cfg.Addr() != defaultAddr || cfg.BufferSize() != defaultBufferSize {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Compress() || cfg.Debug() || cfg.LogFile() != "" || cfg.WSPath() != defaultWSPath {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FERRY_TRANSPORT", "WS")
	t.Setenv("FERRY_ADDR", "0.0.0.0:9000")
	t.Setenv("FERRY_BUFFER_SIZE", "4096")
	t.Setenv("FERRY_COMPRESS", "true")
	t.Setenv("FERRY_DEBUG", "1")
	t.Setenv("FERRY_WS_PATH", "/x")
	t.Setenv("FERRY_LOG_FILE", "")

	cfg := New()
	if cfg.Transport() != TransportWS || cfg.Addr() != "0.0.0.0:9000" || cfg.BufferSize() != 4096 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if !cfg.Compress() || !cfg.Debug() || cfg.WSPath() != "/x" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestNewLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FERRY_TRANSPORT=tcp\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Chdir(dir)
	// godotenv never overrides variables that are already set.
	t.Setenv("FERRY_TRANSPORT", "")
	os.Unsetenv("FERRY_TRANSPORT")

	if got := New().Transport(); got != TransportTCP {
		t.Fatalf("transport from .env: got %q", got)
	}
}

func TestValidate(t *testing.T) {
	base := &Config{transport: TransportQUIC, addr: "x:1", wsPath: "/ferry"}
	tests := []struct {
		name string
		cfg  *Config
		ok   bool
	}{
		{"valid", base, true},
		{"unknown transport", base.WithOverrides("smtp", "", false, false), false},
		{"bad ws path", &Config{transport: TransportWS, addr: "x:1", wsPath: "ferry"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestWithOverrides(t *testing.T) {
	base := &Config{transport: TransportQUIC, addr: "a:1", wsPath: "/ferry"}
	got := base.WithOverrides("TCP", "b:2", true, false)
	if got.Transport() != TransportTCP || got.Addr() != "b:2" || !got.Compress() || got.Debug() {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if base.Transport() != TransportQUIC || base.Addr() != "a:1" {
		t.Fatalf("base config modified")
	}
}
