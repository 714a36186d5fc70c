// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nathoo/realmcore/engine/save"
)

// Save backends.
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

// Config holds the runtime settings.
type Config struct {
	Pack        string // built-in pack name or path
	SaveBackend string
	SaveDir     string
	DBDSN       string
	HTTPAddr    string
	Seed        int64 // zero picks a time-based seed
	LogLevel    slog.Level
	LogFile     string // empty discards logs in interactive modes
	PlayerName  string
}

// Load reads .env files (if present) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Pack:        getEnv("REALM_PACK", "fantasy"),
		SaveBackend: strings.ToLower(getEnv("REALM_SAVE_BACKEND", BackendBolt)),
		SaveDir:     getEnv("REALM_SAVE_DIR", defaultSaveDir()),
		DBDSN:       getEnv("REALM_DB_DSN", ""),
		HTTPAddr:    getEnv("REALM_HTTP_ADDR", ":8080"),
		LogFile:     getEnv("REALM_LOG_FILE", ""),
		PlayerName:  getEnv("REALM_PLAYER_NAME", "Adventurer"),
	}

	if s := os.Getenv("REALM_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("REALM_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if s := os.Getenv("REALM_LOG_LEVEL"); s != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("REALM_LOG_LEVEL: %w", err)
		}
	}

	switch cfg.SaveBackend {
	case BackendFile, BackendBolt:
	case BackendPostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("REALM_SAVE_BACKEND=postgres requires REALM_DB_DSN")
		}
	default:
		return nil, fmt.Errorf("unknown REALM_SAVE_BACKEND %q (want file, bolt or postgres)", cfg.SaveBackend)
	}

	return cfg, nil
}

// Logger builds the process logger. Interactive front ends pass
// discardByDefault so logs never interleave with the transcript unless
// REALM_LOG_FILE is set. The returned closer releases the log file.
func (c *Config) Logger(discardByDefault bool) (*slog.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case c.LogFile != "":
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f.Close
	case discardByDefault:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel})), closer, nil
}

// OpenStore opens the configured save backend. The caller closes it.
func (c *Config) OpenStore() (save.Store, error) {
	switch c.SaveBackend {
	case BackendFile:
		return save.NewFileStore(c.SaveDir), nil
	case BackendBolt:
		return save.OpenBolt(filepath.Join(c.SaveDir, "saves.db"))
	case BackendPostgres:
		return save.OpenPostgres(c.DBDSN)
	}
	return nil, fmt.Errorf("unknown save backend %q", c.SaveBackend)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultSaveDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "realmcore")
	}
	return ".realmcore"
}
