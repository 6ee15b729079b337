package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notekeeper/internal/notekeeper/ports/services"
)

// Константы для сообщений об ошибках.
const (
	ErrSignToken          = "failed to sign session token"
	ErrParseToken         = "failed to parse session token"
	ErrInvalidToken       = "invalid session token"
	ErrUnexpectedSigning  = "unexpected signing method"
	ErrMissingTokenClaims = "missing token claims"
)

// Издатель токенов в claims.
const tokenIssuer = "notekeeper"

// DefaultTokenTTL - время жизни токена по умолчанию. Токен ограничивает
// только абсолютную длину сессии; тайм-аут неактивности ведет хранилище
// сессий, поэтому время жизни токена заметно больше тайм-аута.
const DefaultTokenTTL = 24 * time.Hour

// JWTService реализует TokenService на подписанных HS256 токенах.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

var _ services.TokenService = (*JWTService)(nil)

// NewJWTService создает сервис токенов с заданным секретом и временем жизни.
func NewJWTService(secret string, lifetime time.Duration) *JWTService {
	if lifetime <= 0 {
		lifetime = DefaultTokenTTL
	}
	return &JWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// IssueSessionToken выпускает новый сессионный токен и возвращает его
// вместе с моментом истечения.
func (s *JWTService) IssueSessionToken(_ context.Context) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.lifetime)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrSignToken, err)
	}

	return signed, expiresAt, nil
}

// ValidateSessionToken проверяет подпись и срок жизни токена и
// возвращает его идентификатор.
func (s *JWTService) ValidateSessionToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %v", ErrUnexpectedSigning, t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrParseToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s", ErrInvalidToken)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%s", ErrMissingTokenClaims)
	}

	return claims.ID, nil
}
