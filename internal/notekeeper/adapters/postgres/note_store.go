// Package postgres реализует удаленное документное хранилище заметок поверх Postgres.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/domain/entities"
	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogLoadingNotes = "loading notes from remote store"
	LogNotesLoaded  = "notes loaded from remote store"
	LogSavingNotes  = "saving notes to remote store"
	LogNotesSaved   = "notes saved to remote store"

	ErrQueryNotes    = "failed to query notes"
	ErrScanNote      = "failed to scan note row"
	ErrIterateRows   = "error iterating note rows"
	ErrBeginTx       = "failed to begin transaction"
	ErrClearNotes    = "failed to clear notes table"
	ErrInsertNote    = "failed to insert note"
	ErrCommitTx      = "failed to commit transaction"
)

// PgxPoolInterface описывает используемую часть pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// NoteStore реализует repositories.NoteStore поверх Postgres.
type NoteStore struct {
	pool PgxPoolInterface
}

// NewNoteStore создает новое хранилище заметок.
func NewNoteStore(pool PgxPoolInterface) repositories.NoteStore {
	return &NoteStore{pool: pool}
}

// LoadAll читает полный список заметок, отсортированный по давности изменения.
func (s *NoteStore) LoadAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("store", "postgres"), zap.String("method", "LoadAll"))
	log.Debug(ctx, LogLoadingNotes)

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, created_at, updated_at, original_filename
         FROM notes
         ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		log.Error(ctx, ErrQueryNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrQueryNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt, &note.OriginalFilename)
		if err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	log.Debug(ctx, LogNotesLoaded, zap.Int("count", len(notes)))
	return notes, nil
}

// SaveAll записывает полный список заметок в одной транзакции:
// содержимое таблицы полностью заменяется переданным снимком.
func (s *NoteStore) SaveAll(ctx context.Context, notes []*entities.Note) error {
	log := logger.Log(ctx).With(zap.String("store", "postgres"), zap.String("method", "SaveAll"))
	log.Debug(ctx, LogSavingNotes, zap.Int("count", len(notes)))

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, ErrBeginTx, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM notes`); err != nil {
		log.Error(ctx, ErrClearNotes, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrClearNotes, err)
	}

	for _, note := range notes {
		_, err := tx.Exec(ctx,
			`INSERT INTO notes (id, title, content, created_at, updated_at, original_filename)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt, note.OriginalFilename,
		)
		if err != nil {
			log.Error(ctx, ErrInsertNote, zap.Error(err), zap.String("noteID", note.ID))
			return fmt.Errorf("%s: %w", ErrInsertNote, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, ErrCommitTx, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}

	log.Debug(ctx, LogNotesSaved)
	return nil
}
