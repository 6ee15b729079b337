// Package session содержит HTTP-обработчики админской сессии.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/adapters/http/middleware"
	"notekeeper/internal/notekeeper/app/dto"
	appsession "notekeeper/internal/notekeeper/session"
	"notekeeper/internal/notekeeper/ports/services"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerLogin            = "handling login request"
	LogHandlerLogout           = "handling logout request"
	LogHandlerChangeCredential = "handling change credential request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidCredentials = "invalid credentials"
)

// Handler обработчик HTTP-запросов админской сессии.
type Handler struct {
	sessionService services.SessionService
}

// NewHandler создает новый экземпляр обработчика сессии.
func NewHandler(sessionService services.SessionService) *Handler {
	return &Handler{
		sessionService: sessionService,
	}
}

// Login обрабатывает запрос входа администратора.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	token, expiresAt, err := h.sessionService.Login(requestCtx, req.Password)
	if err != nil {
		if errors.Is(err, appsession.ErrInvalidCredentials) {
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrMsgInvalidCredentials,
			}); err != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", err)
			}
			return nil
		}
		log.Error(requestCtx, "failed to log in", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос выхода администратора.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Logout"))
	log.Debug(requestCtx, LogHandlerLogout)

	if err := h.sessionService.Logout(requestCtx, middleware.SessionToken(ctx)); err != nil {
		log.Error(requestCtx, "failed to log out", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ChangeCredential обрабатывает запрос смены пароля администратора.
func (h *Handler) ChangeCredential(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ChangeCredential"))
	log.Debug(requestCtx, LogHandlerChangeCredential)

	var req dto.ChangeCredentialRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	err := h.sessionService.ChangeCredential(requestCtx, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, appsession.ErrInvalidCredentials):
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrMsgInvalidCredentials,
			}); err != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", err)
			}
			return nil
		case errors.Is(err, appsession.ErrPasswordTooShort), errors.Is(err, appsession.ErrPasswordMismatch):
			if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			}); err != nil {
				return fmt.Errorf("failed to send bad request response: %w", err)
			}
			return nil
		}
		log.Error(requestCtx, "failed to change credential", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError обрабатывает ошибки и возвращает соответствующий HTTP-статус.
func handleError(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if err := ctx.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		}); err != nil {
			return fmt.Errorf("fiber error response error: %w", err)
		}
		return nil
	}

	if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
