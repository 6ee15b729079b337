package services

import (
	"context"
	"time"
)

// SessionService определяет контракт охранника админской сессии.
type SessionService interface {
	// Login проверяет пароль и открывает сессию.
	Login(ctx context.Context, password string) (string, time.Time, error)
	// Logout закрывает сессию.
	Logout(ctx context.Context, token string) error
	// Validate проверяет токен и продлевает сессию.
	Validate(ctx context.Context, token string) error
	// ChangeCredential меняет пароль администратора.
	ChangeCredential(ctx context.Context, current, next, confirm string) error
}
