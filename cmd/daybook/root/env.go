package root

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/daybook/internal/config"
	"github.com/sandeepkv93/daybook/internal/storage"
)

func loadConfig() (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)
	if flags.dataPath != "" {
		cfg.Storage.Path = flags.dataPath
	}
	return cfg, nil
}

// newLogger writes to w at the configured level.
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "daybook",
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(strings.TrimSpace(level)); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openFileLogger opens the log file beside the data file unless it is
// absolute. The TUI owns the terminal, so the UI never logs to stderr.
func openFileLogger(cfg config.Config) (*log.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		return newLogger(io.Discard, cfg.Log.Level), func() {}, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(cfg.Storage.Path), path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return newLogger(f, cfg.Log.Level), func() { _ = f.Close() }, nil
}

func openStorage(cfg config.Config) (storage.KV, func(), error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() { _ = kv.Close() }, nil
}
