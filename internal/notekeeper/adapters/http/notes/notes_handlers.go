// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/adapters/http/middleware"
	"notekeeper/internal/notekeeper/app"
	"notekeeper/internal/notekeeper/app/dto"
	"notekeeper/internal/notekeeper/ports/services"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerSelectNote = "handling select note request"
	LogHandlerStatus     = "handling status request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgNotConfirmed       = "delete requires confirmation"
)

// StorageModeFunc сообщает текущий режим хранилища для индикатора статуса.
type StorageModeFunc func() string

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService services.NotesService
	storageMode  StorageModeFunc
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService services.NotesService, storageMode StorageModeFunc) *Handler {
	return &Handler{
		notesService: notesService,
		storageMode:  storageMode,
	}
}

// Status возвращает режим хранилища и размер списка заметок.
func (h *Handler) Status(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Status"))
	log.Debug(requestCtx, LogHandlerStatus)

	if err := ctx.JSON(dto.StatusResponse{
		StorageMode: h.storageMode(),
		Notes:       len(h.notesService.List(requestCtx)),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes возвращает список заметок, при наличии q - отфильтрованный
// поиском по заголовку и тексту.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	query := ctx.Query("q")
	notes := h.notesService.Search(requestCtx, query)

	if err := ctx.JSON(dto.ListResponse{
		Notes: h.notesService.Summaries(requestCtx, notes),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().Body(&req); err != nil {
			log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
			if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": ErrMsgInvalidRequestBody,
			}); err != nil {
				return fmt.Errorf("failed to send bad request response: %w", err)
			}
			return nil
		}
	}

	note, err := h.notesService.Create(requestCtx, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(h.noteResponse(ctx, note.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		log.Error(requestCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(h.noteResponse(ctx, note.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на правку заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.notesService.Update(requestCtx, noteID, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(h.noteResponse(ctx, note.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки. Удаление требует
// подтверждения параметром confirm=true.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	confirmed := ctx.Query("confirm") == "true"
	if err := h.notesService.Delete(requestCtx, noteID, confirmed); err != nil {
		if errors.Is(err, app.ErrNotConfirmed) {
			if err := ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": ErrMsgNotConfirmed,
			}); err != nil {
				return fmt.Errorf("failed to send conflict response: %w", err)
			}
			return nil
		}
		log.Error(requestCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SelectNote делает заметку текущей, сбросив несохраненные правки
// предыдущей.
func (h *Handler) SelectNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SelectNote"))
	log.Debug(requestCtx, LogHandlerSelectNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	note, err := h.notesService.Select(requestCtx, noteID)
	if err != nil {
		log.Error(requestCtx, "failed to select note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(h.noteResponse(ctx, note.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// noteResponse собирает ответ с заметкой и ее счетчиками.
func (h *Handler) noteResponse(ctx fiber.Ctx, noteID string) dto.NoteResponse {
	requestCtx := middleware.RequestContext(ctx)

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		return dto.NoteResponse{}
	}
	stats, _ := h.notesService.Stats(requestCtx, noteID)
	return dto.NoteResponse{Note: note, Stats: stats}
}

func sendBadRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// handleError обрабатывает ошибки и возвращает соответствующий HTTP-статус.
func handleError(ctx fiber.Ctx, err error) error {
	if errors.Is(err, app.ErrNoteNotFound) {
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgNoteNotFound,
		}); err != nil {
			return fmt.Errorf("failed to send not found response: %w", err)
		}
		return nil
	}

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
