package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "TASKFLOW"

// Config - настройки приложения. Пустой BackendURL включает локальный режим.
type Config struct {
	BackendURL      string        `mapstructure:"backend_url"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	AMQPURL         string        `mapstructure:"amqp_url"`
	EventsQueue     string        `mapstructure:"events_queue"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("amqp_url", "")
	v.SetDefault("events_queue", "task_events")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("shutdown_timeout", 10*time.Second)
}

// Load читает .env (если есть), переменные TASKFLOW_* и необязательный YAML файл.
// Флаги, привязанные к v, имеют приоритет.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.BackendURL = strings.TrimSpace(cfg.BackendURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid backend_url %q: expected absolute http(s) URL", c.BackendURL)
		}
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// RemoteMode - задан адрес бэкенда
func (c *Config) RemoteMode() bool {
	return c.BackendURL != ""
}

func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}
