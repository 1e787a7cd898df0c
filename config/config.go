package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Clipboard ClipboardConfig
	Log       LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string
	// PanelIdleTimeout closes panels that have had no client attached for
	// this long. Zero keeps panels until they are closed explicitly.
	PanelIdleTimeout time.Duration `mapstructure:"panel_idle_timeout"`
}

// StorageConfig selects and configures the recent list backend.
type StorageConfig struct {
	Backend string // memory, file, sqlite, redis
	Key     string
	File    FileConfig
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
	Redis   RedisConfig
}

type FileConfig struct {
	Path string
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// ClipboardConfig toggles writing selections to the host clipboard.
type ClipboardConfig struct {
	Enabled bool
}

// LogConfig holds zap settings.
type LogConfig struct {
	Level  string
	Format string // console or json
}

// Backend names accepted in storage.backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Load reads configuration from an optional YAML file, a .env file in the
// working directory, and the environment. Env var overrides use prefix
// EMOJIPANEL_, e.g. EMOJIPANEL_STORAGE_BACKEND=sqlite.
func Load(cfgPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "emoji-panel")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.panel_idle_timeout", "5m")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.key", "recentSelections")
	v.SetDefault("storage.file.path", filepath.Join(dataDir, "recent.json"))
	v.SetDefault("storage.sqlite.path", filepath.Join(dataDir, "recent.db"))
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "emoji-panel:")
	v.SetDefault("clipboard.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetConfigType("yaml")
	if cfgPath == "" {
		cfgPath = os.Getenv("EMOJIPANEL_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "emoji-panel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EMOJIPANEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot check on its own.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Server.Port == "" {
		return errors.New("server.port must not be empty")
	}
	if c.Server.PanelIdleTimeout < 0 {
		return errors.New("server.panel_idle_timeout must not be negative")
	}
	return nil
}
