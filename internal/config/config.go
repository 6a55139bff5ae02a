// Package config содержит логику чтения конфигурации сервиса проверки национальных кодов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 5 * time.Second
)

// ErrInvalidLogLevel возвращается при неизвестном уровне логирования.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envLogLevel := cfg.LogLevel
	envShutdownTimeout := cfg.ShutdownTimeout

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level (debug, info, warn, error)")
	flag.DurationVar(&cfg.ShutdownTimeout, "t", defaultShutdownTimeout, "graceful shutdown timeout")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}
	if envShutdownTimeout > 0 {
		cfg.ShutdownTimeout = envShutdownTimeout
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	return cfg, nil
}

// Level возвращает уровень логирования zap.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
