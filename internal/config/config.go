// Package config holds the server configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

// Environment variables read by FromEnv.
const (
	EnvAddr           = "CHESS_ADDR"
	EnvAllowedOrigins = "CHESS_ALLOWED_ORIGINS"
	EnvLogLevel       = "CHESS_LOG_LEVEL"
	EnvBufferSize     = "CHESS_WS_BUFFER"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       string
	// Websocket buffer sizes in bytes.
	ReadBufferSize  int
	WriteBufferSize int
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:        "info",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// FromEnv starts from Default and applies any variables lookup finds.
// Pass os.LookupEnv in production.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvBufferSize); ok {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvBufferSize, v)
		}
		cfg.ReadBufferSize, cfg.WriteBufferSize = size, size
	}
	return cfg, nil
}

// RegisterFlags binds command line flags to cfg. Values already in cfg are
// the flag defaults, so flags override the environment.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn or error")
	fs.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer size in bytes")
	fs.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer size in bytes")
	fs.Func("origins", "comma separated list of allowed CORS origins", func(v string) error {
		cfg.AllowedOrigins = splitList(v)
		return nil
	})
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if len(cfg.AllowedOrigins) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	}
	if _, ok := levels[cfg.LogLevel]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	if cfg.ReadBufferSize <= 0 || cfg.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffer sizes must be positive, got %d/%d",
			ErrInvalidConfig, cfg.ReadBufferSize, cfg.WriteBufferSize)
	}
	return nil
}

// Level is the fiber log level for cfg.LogLevel. Call Validate first.
func (cfg Config) Level() log.Level {
	if level, ok := levels[cfg.LogLevel]; ok {
		return level
	}
	return log.LevelInfo
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
