package repositories

import (
	"context"
	"time"
)

// SessionStore - порт к хранилищу флага аутентифицированной сессии.
// Отсутствие записи означает анонимное состояние.
type SessionStore interface {
	// Put сохраняет флаг сессии с заданным временем жизни.
	Put(ctx context.Context, token string, ttl time.Duration) error
	// Refresh продлевает время жизни сессии; возвращает false, если
	// сессия отсутствует или уже истекла.
	Refresh(ctx context.Context, token string, ttl time.Duration) (bool, error)
	// Delete удаляет флаг сессии.
	Delete(ctx context.Context, token string) error
	// Close закрывает соединение с хранилищем.
	Close() error
}
