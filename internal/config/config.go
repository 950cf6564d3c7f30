// Package config holds the ferry CLI configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Transport names accepted by the CLI.
const (
	TransportQUIC = "quic"
	TransportWS   = "ws"
	TransportTCP  = "tcp"
)

const (
	defaultAddr       = "127.0.0.1:4433"
	defaultBufferSize = 256 * 1024
	defaultWSPath     = "/ferry"
)

// Config holds CLI defaults. Fields are unexported; flags override them
// through the With* methods.
type Config struct {
	transport  string
	addr       string
	bufferSize int
	compress   bool
	logFile    string
	debug      bool
	wsPath     string
}

// New reads FERRY_* variables, loading a .env file first when present.
func New() *Config {
	_ = godotenv.Load() // ignore error if .env not found

	transport := strings.ToLower(os.Getenv("FERRY_TRANSPORT"))
	if transport == "" {
		transport = TransportQUIC
	}

	addr := os.Getenv("FERRY_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	bufferSize, err := strconv.Atoi(os.Getenv("FERRY_BUFFER_SIZE"))
	if err != nil || bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	wsPath := os.Getenv("FERRY_WS_PATH")
	if wsPath == "" {
		wsPath = defaultWSPath
	}

	return &Config{
		transport:  transport,
		addr:       addr,
		bufferSize: bufferSize,
		compress:   envBool("FERRY_COMPRESS"),
		logFile:    os.Getenv("FERRY_LOG_FILE"),
		debug:      envBool("FERRY_DEBUG"),
		wsPath:     wsPath,
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// Validate reports settings no transfer can run with.
func (c *Config) Validate() error {
	switch c.transport {
	case TransportQUIC, TransportWS, TransportTCP:
	default:
		return fmt.Errorf("config: unknown transport %q (want quic, ws or tcp)", c.transport)
	}
	if c.addr == "" {
		return fmt.Errorf("config: empty address")
	}
	if !strings.HasPrefix(c.wsPath, "/") {
		return fmt.Errorf("config: websocket path %q must start with /", c.wsPath)
	}
	return nil
}

// Getter methods (immutable from outside)

func (c *Config) Transport() string { return c.transport }

func (c *Config) Addr() string { return c.addr }

func (c *Config) BufferSize() int { return c.bufferSize }

func (c *Config) Compress() bool { return c.compress }

func (c *Config) LogFile() string { return c.logFile }

func (c *Config) Debug() bool { return c.debug }

func (c *Config) WSPath() string { return c.wsPath }

// WithOverrides returns a copy with every non-zero argument applied.
func (c *Config) WithOverrides(transport, addr string, compress, debug bool) *Config {
	out := *c
	if transport != "" {
		out.transport = strings.ToLower(transport)
	}
	if addr != "" {
		out.addr = addr
	}
	out.compress = out.compress || compress
	out.debug = out.debug || debug
	return &out
}
