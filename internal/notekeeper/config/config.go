// Package config загружает конфигурацию сервиса из переменных окружения.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"notekeeper/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrReadEnv = "failed to read environment config"
)

// Config - конфигурация сервиса notekeeper.
type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Storage  StorageConfig
	Shutdown ShutdownConfig
}

// HTTPConfig - настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `env:"NOTEKEEPER_HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `env:"NOTEKEEPER_HTTP_PORT" env-default:"8080"`
}

// Address возвращает адрес прослушивания HTTP-сервера.
func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PostgresConfig - настройки удаленного хранилища заметок.
type PostgresConfig struct {
	Host           string `env:"NOTEKEEPER_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `env:"NOTEKEEPER_POSTGRES_PORT" env-default:"5432"`
	User           string `env:"NOTEKEEPER_POSTGRES_USER" env-default:"postgres"`
	Password       string `env:"NOTEKEEPER_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `env:"NOTEKEEPER_POSTGRES_DB" env-default:"notekeeper"`
	SSLMode        string `env:"NOTEKEEPER_POSTGRES_SSLMODE" env-default:"disable"`
	MinConns       int32  `env:"NOTEKEEPER_POSTGRES_MIN_CONNS" env-default:"1"`
	MaxConns       int32  `env:"NOTEKEEPER_POSTGRES_MAX_CONNS" env-default:"4"`
	MigrationsPath string `env:"NOTEKEEPER_POSTGRES_MIGRATIONS" env-default:"file://migrations"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// RedisConfig - настройки хранилища сессий.
type RedisConfig struct {
	Host     string `env:"NOTEKEEPER_REDIS_HOST" env-default:"localhost"`
	Port     int    `env:"NOTEKEEPER_REDIS_PORT" env-default:"6379"`
	Password string `env:"NOTEKEEPER_REDIS_PASSWORD" env-default:""`
	DB       int    `env:"NOTEKEEPER_REDIS_DB" env-default:"0"`
}

// Address возвращает адрес Redis.
func (c RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Environment string `env:"NOTEKEEPER_ENV" env-default:"development"`
	Level       string `env:"NOTEKEEPER_LOG_LEVEL" env-default:"info"`
}

// GetEnvironment возвращает окружение логирования.
func (c LoggingConfig) GetEnvironment() logger.Environment {
	if c.Environment == string(logger.Production) {
		return logger.Production
	}
	return logger.Development
}

// SessionConfig - настройки сессии администратора. Тайм-аут неактивности
// плавающий и сбрасывается активностью; TokenTTL ограничивает абсолютную
// длину сессии и потому заметно больше тайм-аута.
type SessionConfig struct {
	Secret            string        `env:"NOTEKEEPER_SESSION_SECRET" env-default:"change-me-in-production"`
	InactivityTimeout time.Duration `env:"NOTEKEEPER_SESSION_TIMEOUT" env-default:"30m"`
	TokenTTL          time.Duration `env:"NOTEKEEPER_SESSION_TOKEN_TTL" env-default:"24h"`
	BcryptCost        int           `env:"NOTEKEEPER_BCRYPT_COST" env-default:"10"`
}

// StorageConfig - настройки хранилищ заметок.
type StorageConfig struct {
	DataDir       string        `env:"NOTEKEEPER_DATA_DIR" env-default:"data"`
	RemoteEnabled bool          `env:"NOTEKEEPER_REMOTE_ENABLED" env-default:"true"`
	SaveDebounce  time.Duration `env:"NOTEKEEPER_SAVE_DEBOUNCE" env-default:"1s"`
}

// NotesPath возвращает путь к файлу локального хранилища заметок.
func (c StorageConfig) NotesPath() string {
	return filepath.Join(c.DataDir, "notes.json")
}

// CredentialPath возвращает путь к файлу с хешем пароля.
func (c StorageConfig) CredentialPath() string {
	return filepath.Join(c.DataDir, "credential")
}

// ShutdownConfig - настройки остановки сервиса.
type ShutdownConfig struct {
	Timeout time.Duration `env:"NOTEKEEPER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load читает конфигурацию из переменных окружения.
func Load(_ context.Context) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrReadEnv, err)
	}
	return &cfg, nil
}
