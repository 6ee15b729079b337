package notes

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/adapters/http/middleware"
	"notekeeper/internal/notekeeper/app/dto"
	"notekeeper/internal/notekeeper/codec"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerExportNote = "handling export note request"
	LogHandlerExportAll  = "handling export all request"
	LogHandlerImport     = "handling import request"

	ErrMsgUnknownFormat = "unknown export format"
	ErrMsgNoFiles       = "no files provided"
)

// ExportNote отдает заметку файлом в запрошенном формате.
func (h *Handler) ExportNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ExportNote"))
	log.Debug(requestCtx, LogHandlerExportNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	format, err := codec.ParseFormat(ctx.Query("format"))
	if err != nil {
		return sendBadRequest(ctx, ErrMsgUnknownFormat)
	}

	note, err := h.notesService.Get(requestCtx, noteID)
	if err != nil {
		return handleError(ctx, err)
	}

	data, err := codec.ExportNote(note, format)
	if err != nil {
		log.Error(requestCtx, "failed to export note", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, format.ContentType())
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", codec.ExportFilename(note, format)))
	if err := ctx.Send(data); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ExportAll отдает резервную копию всех заметок одним JSON-файлом.
func (h *Handler) ExportAll(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ExportAll"))
	log.Debug(requestCtx, LogHandlerExportAll)

	now := time.Now()
	data, err := codec.ExportAll(h.notesService.List(requestCtx), now)
	if err != nil {
		log.Error(requestCtx, "failed to export backup", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, codec.FormatJSON.ContentType())
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", codec.ExportAllFilename(now)))
	if err := ctx.Send(data); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ImportNotes принимает multipart-набор файлов. Файл, который не удалось
// разобрать, пропускается и перечисляется в ответе; остальные становятся
// новыми заметками.
func (h *Handler) ImportNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ImportNotes"))
	log.Debug(requestCtx, LogHandlerImport)

	form, err := ctx.MultipartForm()
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return sendBadRequest(ctx, ErrMsgNoFiles)
	}

	files := make([]codec.ImportFile, 0, len(headers))
	var unreadable []string
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			unreadable = append(unreadable, header.Filename)
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			unreadable = append(unreadable, header.Filename)
			continue
		}
		files = append(files, codec.ImportFile{Name: header.Filename, Data: data})
	}

	result := codec.ImportAll(files)
	imported, err := h.notesService.Import(requestCtx, result.Notes)
	if err != nil {
		log.Error(requestCtx, "failed to store imported notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.ImportResponse{
		Imported: imported,
		Skipped:  append(unreadable, result.Skipped...),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
