package services

import (
	"context"

	"notekeeper/internal/notekeeper/app/dto"
	"notekeeper/internal/notekeeper/domain/entities"
)

// NotesService определяет контракт репозитория заметок для HTTP-слоя.
type NotesService interface {
	// List возвращает все заметки, самые свежие первыми.
	List(ctx context.Context) []*entities.Note
	// Get возвращает заметку по идентификатору.
	Get(ctx context.Context, id string) (*entities.Note, error)
	// Current возвращает выбранную заметку.
	Current(ctx context.Context) *entities.Note
	// Create создает заметку и делает ее текущей.
	Create(ctx context.Context, title, content string) (*entities.Note, error)
	// Select делает заметку текущей, сбросив отложенные правки.
	Select(ctx context.Context, id string) (*entities.Note, error)
	// Update применяет правку и планирует отложенное сохранение.
	Update(ctx context.Context, id, title, content string) (*entities.Note, error)
	// Delete удаляет заметку после подтверждения.
	Delete(ctx context.Context, id string, confirmed bool) error
	// Search ищет по заголовку и тексту без учета регистра.
	Search(ctx context.Context, query string) []*entities.Note
	// Import добавляет разобранные при импорте заметки.
	Import(ctx context.Context, notes []*entities.Note) (int, error)
	// Flush немедленно записывает отложенные правки.
	Flush(ctx context.Context) error
	// Stats возвращает счетчики слов и символов заметки.
	Stats(ctx context.Context, id string) (dto.NoteStats, error)
	// Summaries проецирует заметки в строки списка.
	Summaries(ctx context.Context, notes []*entities.Note) []dto.NoteSummary
}
