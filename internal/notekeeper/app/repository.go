// Package app содержит прикладной слой: репозиторий заметок с отложенным
// автосохранением и выбором текущей заметки.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/codec"
	"notekeeper/internal/notekeeper/domain/entities"
	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogNoteCreated   = "note created"
	LogNoteSelected  = "note selected"
	LogNoteUpdated   = "note updated"
	LogNoteDeleted   = "note deleted"
	LogAutoCreated   = "note list empty after delete, created a fresh note"
	LogFlushFailed   = "debounced save failed"
	LogRepositoryRun = "note repository initialized"

	ErrLoadNotes = "failed to load notes"
	ErrSaveNotes = "failed to save notes"
)

// Ошибки прикладного слоя.
var (
	// ErrNoteNotFound возвращается при обращении к несуществующей заметке.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotConfirmed возвращается, когда удаление не подтверждено.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// DefaultDebounce - задержка между правкой и автосохранением.
const DefaultDebounce = time.Second

// Repository хранит рабочий список заметок в памяти и персистит его через
// NoteStore. Правки сохраняются с дебаунсом: таймер перезапускается каждой
// правкой, смена заметки и явный Flush сбрасывают накопленное немедленно.
type Repository struct {
	store    repositories.NoteStore
	debounce time.Duration
	baseCtx  context.Context

	mu        sync.Mutex
	notes     []*entities.Note
	currentID string
	timer     *time.Timer
	dirty     bool
}

// NewRepository загружает заметки из хранилища и выбирает самую свежую.
// Пустое хранилище получает одну новую заметку: список никогда не пуст.
func NewRepository(ctx context.Context, store repositories.NoteStore, debounce time.Duration) (*Repository, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	notes, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadNotes, err)
	}

	r := &Repository{
		store:    store,
		debounce: debounce,
		baseCtx:  context.WithoutCancel(ctx),
		notes:    notes,
	}
	r.sortLocked()

	if len(r.notes) == 0 {
		note := entities.NewNote("", "")
		r.notes = []*entities.Note{note}
		if err := store.SaveAll(ctx, r.snapshotLocked()); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSaveNotes, err)
		}
	}
	r.currentID = r.notes[0].ID

	logger.Log(ctx).Info(ctx, LogRepositoryRun, zap.Int("notes", len(r.notes)))
	return r, nil
}

// List возвращает все заметки, отсортированные по времени правки (убывание).
func (r *Repository) List(_ context.Context) []*entities.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Get возвращает заметку по идентификатору.
func (r *Repository) Get(_ context.Context, id string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := r.findLocked(id)
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note.Clone(), nil
}

// Current возвращает выбранную заметку.
func (r *Repository) Current(_ context.Context) *entities.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := r.findLocked(r.currentID)
	if note == nil {
		return nil
	}
	return note.Clone()
}

// Create сбрасывает отложенные правки, создает новую заметку и делает
// ее текущей. Создание сохраняется сразу, без дебаунса.
func (r *Repository) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.flushLocked(ctx); err != nil {
		return nil, err
	}

	note := entities.NewNote(title, content)
	r.notes = append(r.notes, note)
	r.sortLocked()
	r.currentID = note.ID

	if err := r.store.SaveAll(ctx, r.snapshotLocked()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSaveNotes, err)
	}

	logger.Log(ctx).Info(ctx, LogNoteCreated, zap.String("note_id", note.ID))
	return note.Clone(), nil
}

// Select делает заметку текущей. Отложенные правки предыдущей заметки
// записываются до переключения, чтобы переключение их не потеряло.
func (r *Repository) Select(ctx context.Context, id string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := r.findLocked(id)
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if err := r.flushLocked(ctx); err != nil {
		return nil, err
	}

	r.currentID = id
	logger.Log(ctx).Debug(ctx, LogNoteSelected, zap.String("note_id", id))
	return note.Clone(), nil
}

// Update применяет правку заголовка и содержимого и планирует отложенное
// сохранение. Каждая правка перезапускает таймер дебаунса.
func (r *Repository) Update(ctx context.Context, id, title, content string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := r.findLocked(id)
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Title = title
	note.Content = content
	note.Touch()
	r.sortLocked()
	r.scheduleSaveLocked()

	logger.Log(ctx).Debug(ctx, LogNoteUpdated, zap.String("note_id", id))
	return note.Clone(), nil
}

// Delete удаляет заметку. Удаление требует подтверждения. Если удалена
// последняя заметка, сразу создается новая: список никогда не пуст.
// Текущей становится самая свежая из оставшихся.
func (r *Repository) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, note := range r.notes {
		if note.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNoteNotFound
	}

	r.cancelTimerLocked()
	r.dirty = false
	r.notes = append(r.notes[:idx], r.notes[idx+1:]...)

	log := logger.Log(ctx)
	if len(r.notes) == 0 {
		note := entities.NewNote("", "")
		r.notes = []*entities.Note{note}
		log.Info(ctx, LogAutoCreated, zap.String("note_id", note.ID))
	}
	r.sortLocked()
	r.currentID = r.notes[0].ID

	if err := r.store.SaveAll(ctx, r.snapshotLocked()); err != nil {
		return fmt.Errorf("%s: %w", ErrSaveNotes, err)
	}

	log.Info(ctx, LogNoteDeleted, zap.String("note_id", id))
	return nil
}

// Import добавляет разобранные при импорте заметки и сохраняет список.
// Текущей становится самая свежая заметка.
func (r *Repository) Import(ctx context.Context, notes []*entities.Note) (int, error) {
	if len(notes) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.flushLocked(ctx); err != nil {
		return 0, err
	}

	for _, note := range notes {
		r.notes = append(r.notes, note.Clone())
	}
	r.sortLocked()
	r.currentID = r.notes[0].ID

	if err := r.store.SaveAll(ctx, r.snapshotLocked()); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrSaveNotes, err)
	}

	logger.Log(ctx).Info(ctx, "notes imported", zap.Int("count", len(notes)))
	return len(notes), nil
}

// Search возвращает заметки, чей заголовок или текст содержат запрос
// без учета регистра. Пустой запрос возвращает весь список.
func (r *Repository) Search(_ context.Context, query string) []*entities.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return r.snapshotLocked()
	}

	needle := strings.ToLower(query)
	result := make([]*entities.Note, 0, len(r.notes))
	for _, note := range r.notes {
		title := strings.ToLower(note.Title)
		text := strings.ToLower(codec.StripHTML(note.Content))
		if strings.Contains(title, needle) || strings.Contains(text, needle) {
			result = append(result, note.Clone())
		}
	}
	return result
}

// Flush немедленно записывает отложенные правки.
func (r *Repository) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked(ctx)
}

// Close сбрасывает отложенные правки перед остановкой.
func (r *Repository) Close(ctx context.Context) error {
	return r.Flush(ctx)
}

func (r *Repository) findLocked(id string) *entities.Note {
	for _, note := range r.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func (r *Repository) snapshotLocked() []*entities.Note {
	snapshot := make([]*entities.Note, len(r.notes))
	for i, note := range r.notes {
		snapshot[i] = note.Clone()
	}
	return snapshot
}

func (r *Repository) sortLocked() {
	sort.SliceStable(r.notes, func(i, j int) bool {
		if !r.notes[i].UpdatedAt.Equal(r.notes[j].UpdatedAt) {
			return r.notes[i].UpdatedAt.After(r.notes[j].UpdatedAt)
		}
		return r.notes[i].ID < r.notes[j].ID
	})
}

func (r *Repository) scheduleSaveLocked() {
	r.dirty = true
	r.cancelTimerLocked()
	r.timer = time.AfterFunc(r.debounce, func() {
		if err := r.Flush(r.baseCtx); err != nil {
			logger.Log(r.baseCtx).Warn(r.baseCtx, LogFlushFailed, zap.Error(err))
		}
	})
}

func (r *Repository) cancelTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Repository) flushLocked(ctx context.Context) error {
	r.cancelTimerLocked()
	if !r.dirty {
		return nil
	}
	if err := r.store.SaveAll(ctx, r.snapshotLocked()); err != nil {
		return fmt.Errorf("%s: %w", ErrSaveNotes, err)
	}
	r.dirty = false
	return nil
}
