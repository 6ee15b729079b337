// Package sessioncache реализует хранилище сессионных флагов на Redis.
package sessioncache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/pkg/logger"
)

// Константы для сообщений об ошибках и логах.
const (
	ErrConnectRedis   = "failed to connect to redis"
	ErrPutSession     = "failed to store session flag"
	ErrRefreshSession = "failed to refresh session flag"
	ErrDeleteSession  = "failed to delete session flag"

	LogRedisConnected = "connected to redis"
	LogRedisClosed    = "redis connection closed"
)

// Префикс ключей сессий в Redis.
const sessionKeyPrefix = "notekeeper:session:"

// Store хранит флаг активной сессии в Redis с плавающим TTL.
// Пока флаг жив, сессия считается активной; истечение TTL означает
// тайм-аут неактивности.
type Store struct {
	client *redis.Client
}

var _ repositories.SessionStore = (*Store)(nil)

// New создает хранилище сессий и проверяет соединение.
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnectRedis, err)
	}

	logger.Log(ctx).Info(ctx, LogRedisConnected, zap.String("addr", addr))

	return &Store{client: client}, nil
}

// NewWithClient оборачивает готовый клиент, используется в тестах.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Put записывает флаг сессии с заданным TTL.
func (s *Store) Put(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrPutSession, err)
	}
	return nil
}

// Refresh продлевает TTL флага сессии. Возвращает false, если флаг
// уже истек или был удален.
func (s *Store) Refresh(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	ok, err := s.client.Expire(ctx, sessionKey(token), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrRefreshSession, err)
	}
	return ok, nil
}

// Delete удаляет флаг сессии.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteSession, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
