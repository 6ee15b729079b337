// Package services определяет порты к вспомогательным сервисам.
package services

import (
	"context"
	"time"
)

// TokenService - порт к сервису токенов сессии.
type TokenService interface {
	// IssueSessionToken выпускает новый токен сессии и возвращает его
	// вместе со временем истечения.
	IssueSessionToken(ctx context.Context) (string, time.Time, error)
	// ValidateSessionToken проверяет подпись и срок действия токена,
	// возвращая его уникальный идентификатор.
	ValidateSessionToken(ctx context.Context, token string) (string, error)
}
