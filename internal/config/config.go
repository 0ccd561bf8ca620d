// Package config resolves runtime settings from defaults, a YAML file and
// DAYBOOK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Persist PersistConfig `yaml:"persist" mapstructure:"persist"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Driver  string `yaml:"driver" mapstructure:"driver"`
	Path    string `yaml:"path" mapstructure:"path"`
}

type PersistConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

func (p PersistConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMS) * time.Millisecond
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

type UIConfig struct {
	ShowCompleted bool `yaml:"show_completed" mapstructure:"show_completed"`
	RecentDays    int  `yaml:"recent_days" mapstructure:"recent_days"`
}

type CacheConfig struct {
	Size int `yaml:"size" mapstructure:"size"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: "sqlite", Driver: "sqlite3", Path: "daybook.db"},
		Persist: PersistConfig{DebounceMS: 250},
		Log:     LogConfig{Level: "info", File: "daybook.log"},
		UI:      UIConfig{ShowCompleted: false, RecentDays: 5},
		Cache:   CacheConfig{Size: 128},
	}
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daybook.yaml"
	}
	return filepath.Join(home, ".config", "daybook", "config.yaml")
}

// Load overlays the YAML file at path onto the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: stat %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// FromEnv applies DAYBOOK_* overrides to base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("DAYBOOK_STORAGE_BACKEND"); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := getEnvString("DAYBOOK_STORAGE_DRIVER"); ok {
		cfg.Storage.Driver = v
	}
	if v, ok := getEnvString("DAYBOOK_STORAGE_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvInt("DAYBOOK_PERSIST_DEBOUNCE_MS"); ok && v >= 0 {
		cfg.Persist.DebounceMS = v
	}
	if v, ok := getEnvString("DAYBOOK_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvString("DAYBOOK_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvBool("DAYBOOK_UI_SHOW_COMPLETED"); ok {
		cfg.UI.ShowCompleted = v
	}
	if v, ok := getEnvInt("DAYBOOK_UI_RECENT_DAYS"); ok && v > 0 {
		cfg.UI.RecentDays = v
	}
	if v, ok := getEnvInt("DAYBOOK_CACHE_SIZE"); ok && v > 0 {
		cfg.Cache.Size = v
	}
	return cfg.normalized()
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	payload, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}
	return os.WriteFile(path, payload, 0o644)
}

func (c Config) normalized() Config {
	def := Default()
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Persist.DebounceMS < 0 {
		c.Persist.DebounceMS = 0
	}
	if c.UI.RecentDays <= 0 {
		c.UI.RecentDays = def.UI.RecentDays
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = def.Cache.Size
	}
	return c
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
