package notes

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/adapters/http/middleware"
	"notekeeper/internal/notekeeper/app/dto"
	"notekeeper/internal/notekeeper/domain/entities"
	"notekeeper/internal/notekeeper/editor"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerInsertTable = "handling insert table request"
	LogHandlerInsertImage = "handling insert image request"
	LogHandlerResizeImage = "handling resize image request"

	ErrMsgEmptyImage    = "image source or paste items required"
	ErrMsgInvalidResize = "invalid resize gesture"
	ErrMsgNoSuchImage   = "image index out of range"
)

// InsertTable вставляет таблицу в заметку и сохраняет правку.
func (h *Handler) InsertTable(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.InsertTable"))
	log.Debug(requestCtx, LogHandlerInsertTable)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.TableRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().Body(&req); err != nil {
			log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
			return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
		}
	}

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		return handleError(ctx, err)
	}

	doc := documentAt(note, req.Cursor)
	doc.InsertTable(req.Rows, req.Cols)

	updated, err := h.notesService.Update(requestCtx, noteID, note.Title, doc.Content)
	if err != nil {
		log.Error(requestCtx, "failed to apply table insert", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(h.noteResponse(ctx, updated.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// InsertImage вставляет изображение напрямую либо обрабатывает перехват
// вставки из буфера обмена.
func (h *Handler) InsertImage(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.InsertImage"))
	log.Debug(requestCtx, LogHandlerInsertImage)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.ImageRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.Src == "" && len(req.Items) == 0 {
		return sendBadRequest(ctx, ErrMsgEmptyImage)
	}

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		return handleError(ctx, err)
	}

	doc := documentAt(note, req.Cursor)
	if len(req.Items) > 0 {
		items := make([]editor.PasteItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, editor.PasteItem{Kind: item.Kind, Data: item.Data})
		}
		if !doc.HandlePaste(items) {
			return sendBadRequest(ctx, ErrMsgEmptyImage)
		}
	} else {
		doc.InsertImage(req.Src)
	}

	updated, err := h.notesService.Update(requestCtx, noteID, note.Title, doc.Content)
	if err != nil {
		log.Error(requestCtx, "failed to apply image insert", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(h.noteResponse(ctx, updated.ID)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ResizeImage применяет жест изменения размера изображения: начало на
// ручке, горизонтальное смещение, фиксация итоговой ширины в разметке.
func (h *Handler) ResizeImage(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ResizeImage"))
	log.Debug(requestCtx, LogHandlerResizeImage)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.ResizeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		return handleError(ctx, err)
	}
	if req.Index < 0 || req.Index >= editor.CountImages(note.Content) {
		return sendBadRequest(ctx, ErrMsgNoSuchImage)
	}

	var session editor.ResizeSession
	if err := session.Begin(req.Handle, req.StartWidth, req.StartHeight, req.ContainerWidth); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidResize, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidResize)
	}
	width, height, readout, err := session.Move(req.DeltaX)
	if err != nil {
		return sendBadRequest(ctx, ErrMsgInvalidResize)
	}
	finalWidth, err := session.End()
	if err != nil {
		return sendBadRequest(ctx, ErrMsgInvalidResize)
	}

	content := editor.SetImageWidth(note.Content, req.Index, finalWidth)
	updated, err := h.notesService.Update(requestCtx, noteID, note.Title, content)
	if err != nil {
		log.Error(requestCtx, "failed to persist resized image", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.ResizeResponse{
		Note:    updated,
		Width:   width,
		Height:  height,
		Readout: readout,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// documentAt строит документ редактора с курсором в запрошенной позиции;
// без позиции курсор встает в конец содержимого.
func documentAt(note *entities.Note, cursor *int) *editor.Document {
	doc := editor.NewDocument(note.Content)
	if cursor != nil {
		doc.Cursor = *cursor
	}
	return doc
}
