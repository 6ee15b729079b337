// Package repositories определяет порты к хранилищам данных.
package repositories

import (
	"context"

	"notekeeper/internal/notekeeper/domain/entities"
)

// NoteStore - порт к одному долговременному хранилищу списка заметок
// (локальный файл или удаленное документное хранилище).
type NoteStore interface {
	// LoadAll читает полный список заметок из хранилища.
	LoadAll(ctx context.Context) ([]*entities.Note, error)
	// SaveAll записывает полный список заметок в хранилище.
	SaveAll(ctx context.Context, notes []*entities.Note) error
}
