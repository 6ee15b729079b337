// Package session реализует охранника админской сессии: вход по паролю,
// сессионный токен с тайм-аутом неактивности и смену пароля.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/internal/notekeeper/ports/services"
	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDefaultSeeded     = "default credential seeded, change it after first login"
	LogLoginOK           = "admin logged in"
	LogLoginRejected     = "login rejected"
	LogLogout            = "admin logged out"
	LogCredentialChanged = "admin credential changed"

	ErrLoadCredential  = "failed to load credential"
	ErrStoreCredential = "failed to store credential"
	ErrIssueToken      = "failed to issue session token"
	ErrStoreSession    = "failed to store session"
)

// Минимальная длина пароля.
const MinPasswordLength = 6

// DefaultTimeout - тайм-аут неактивности сессии.
const DefaultTimeout = 30 * time.Minute

// Пароль по умолчанию до первой смены.
const defaultPassword = "admin123"

// Ошибки охранника. Причины намеренно общие и не уточняют, что именно
// не совпало.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)

// Guard проверяет пароль администратора и ведет его сессию. Сессия
// активна, пока жив флаг в хранилище сессий; каждый успешный Validate
// продлевает флаг, реализуя плавающий тайм-аут неактивности. Токен живет
// дольше тайм-аута и ограничивает лишь абсолютную длину сессии: активный
// администратор не разлогинивается, пока продлевается флаг.
type Guard struct {
	credentials repositories.CredentialStore
	sessions    repositories.SessionStore
	tokens      services.TokenService
	passwords   services.PasswordService
	timeout     time.Duration
}

// NewGuard создает охранника. Если пароль еще не установлен, сохраняется
// хеш пароля по умолчанию.
func NewGuard(
	ctx context.Context,
	credentials repositories.CredentialStore,
	sessions repositories.SessionStore,
	tokens services.TokenService,
	passwords services.PasswordService,
	timeout time.Duration,
) (*Guard, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	g := &Guard{
		credentials: credentials,
		sessions:    sessions,
		tokens:      tokens,
		passwords:   passwords,
		timeout:     timeout,
	}

	hash, err := credentials.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadCredential, err)
	}
	if hash == "" {
		seeded, err := passwords.Hash(ctx, defaultPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrStoreCredential, err)
		}
		if err := credentials.Store(ctx, seeded); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrStoreCredential, err)
		}
		logger.Log(ctx).Warn(ctx, LogDefaultSeeded)
	}

	return g, nil
}

// Login проверяет пароль и открывает сессию. Возвращает сессионный токен
// и момент истечения при отсутствии активности; активность отодвигает
// этот момент.
func (g *Guard) Login(ctx context.Context, password string) (string, time.Time, error) {
	log := logger.Log(ctx)

	hash, err := g.credentials.Load(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrLoadCredential, err)
	}

	ok, err := g.passwords.Verify(ctx, password, hash)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrLoadCredential, err)
	}
	if !ok {
		log.Warn(ctx, LogLoginRejected)
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, _, err := g.tokens.IssueSessionToken(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrIssueToken, err)
	}
	if err := g.sessions.Put(ctx, token, g.timeout); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrStoreSession, err)
	}

	log.Info(ctx, LogLoginOK)
	return token, time.Now().Add(g.timeout), nil
}

// Logout закрывает сессию.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if err := g.sessions.Delete(ctx, token); err != nil {
		return err
	}
	logger.Log(ctx).Info(ctx, LogLogout)
	return nil
}

// Validate проверяет токен и флаг сессии. Успешная проверка продлевает
// флаг, сбрасывая отсчет тайм-аута неактивности. Подпись токена не несет
// тайм-аут: истечение по неактивности определяет только флаг.
func (g *Guard) Validate(ctx context.Context, token string) error {
	if _, err := g.tokens.ValidateSessionToken(ctx, token); err != nil {
		return ErrSessionExpired
	}

	alive, err := g.sessions.Refresh(ctx, token, g.timeout)
	if err != nil {
		return err
	}
	if !alive {
		return ErrSessionExpired
	}
	return nil
}

// ChangeCredential меняет пароль администратора. Текущий пароль должен
// подойти, новый пароль должен пройти проверку длины и совпасть с
// подтверждением.
func (g *Guard) ChangeCredential(ctx context.Context, current, next, confirm string) error {
	hash, err := g.credentials.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadCredential, err)
	}

	ok, err := g.passwords.Verify(ctx, current, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadCredential, err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	nextHash, err := g.passwords.Hash(ctx, next)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrStoreCredential, err)
	}
	if err := g.credentials.Store(ctx, nextHash); err != nil {
		return fmt.Errorf("%s: %w", ErrStoreCredential, err)
	}

	logger.Log(ctx).Info(ctx, LogCredentialChanged)
	return nil
}

// Timeout возвращает настроенный тайм-аут неактивности.
func (g *Guard) Timeout() time.Duration {
	return g.timeout
}
