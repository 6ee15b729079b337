// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/ports/services"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorSessionExpired     = "session expired"
)

// Ключи значений запроса в Locals.
const (
	RequestContextKey = "requestContext"
	SessionTokenKey   = "sessionToken"
)

// NewAuthMiddleware создает промежуточное ПО, пускающее дальше только
// запросы с живой админской сессией. Успешная проверка продлевает
// сессию, реализуя сброс тайм-аута неактивности активностью.
func NewAuthMiddleware(sessions services.SessionService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			}); err != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", err)
			}
			return nil
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			}); err != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", err)
			}
			return nil
		}

		if err := sessions.Validate(requestCtx, token); err != nil {
			log.Debug(requestCtx, ErrorSessionExpired, zap.Error(err))
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorSessionExpired,
			}); err != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", err)
			}
			return nil
		}

		ctx.Locals(SessionTokenKey, token)
		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса, заложенный middleware
// логирования, либо контекст fiber как запасной вариант.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// SessionToken возвращает токен сессии текущего запроса.
func SessionToken(ctx fiber.Ctx) string {
	token, _ := ctx.Locals(SessionTokenKey).(string)
	return token
}
