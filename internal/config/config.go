// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultWSAddr        = "0.0.0.0:8080"
	defaultServiceName   = "mparcade"
	defaultTickHz        = 30
	defaultBroadcastHz   = 10
	defaultLogLevel      = "info"
	defaultSubjectPrefix = "arcade"
)

var ErrInvalidPort = errors.New("invalid port")

// Config holds every setting of the arcade binaries.
type Config struct {
	WSAddr        string
	ServiceName   string
	TickHz        int
	BroadcastHz   int
	LogLevel      string
	PrettyLogs    bool
	NatsURL       string
	SubjectPrefix string
	ConsulAddr    string
}

// TickInterval is the time between two game loop frames.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickHz)
}

// Port extracts the numeric port from WSAddr.
func (c *Config) Port() (int, error) {
	i := strings.LastIndex(c.WSAddr, ":")
	if i < 0 {
		return 0, fmt.Errorf("%w: %q has no port", ErrInvalidPort, c.WSAddr)
	}
	p, err := strconv.Atoi(c.WSAddr[i+1:])
	if err != nil || p <= 0 || p > 65535 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, c.WSAddr)
	}
	return p, nil
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	tickHz, err := intEnv("ARCADE_TICK_HZ", defaultTickHz)
	if err != nil {
		return nil, err
	}
	broadcastHz, err := intEnv("ARCADE_BROADCAST_HZ", defaultBroadcastHz)
	if err != nil {
		return nil, err
	}
	if tickHz <= 0 || broadcastHz <= 0 {
		return nil, fmt.Errorf("tick and broadcast rates must be positive (got %d, %d)", tickHz, broadcastHz)
	}
	cfg := &Config{
		WSAddr:        stringEnv("ARCADE_WS_ADDR", defaultWSAddr),
		ServiceName:   stringEnv("ARCADE_SERVICE_NAME", defaultServiceName),
		TickHz:        tickHz,
		BroadcastHz:   broadcastHz,
		LogLevel:      stringEnv("ARCADE_LOG_LEVEL", defaultLogLevel),
		PrettyLogs:    boolEnv("ARCADE_LOG_PRETTY"),
		NatsURL:       os.Getenv("NATS_URL"),
		SubjectPrefix: stringEnv("NATS_SUBJECT_PREFIX", defaultSubjectPrefix),
		ConsulAddr:    os.Getenv("CONSUL_HTTP_ADDR"),
	}
	if _, err := cfg.Port(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
