// Package localstore реализует локальное файловое хранилище списка заметок.
package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/domain/entities"
	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogStoreMissing  = "local store file missing, starting with empty note list"
	LogStoreCorrupt  = "local store unreadable, resetting to empty note list"
	LogStoreLoaded   = "notes loaded from local store"
	LogStoreSaved    = "notes saved to local store"
	ErrWriteStore    = "failed to write local store"
	ErrEncodeStore   = "failed to encode note list"
	ErrReplaceStore  = "failed to replace local store file"
	ErrCreateDataDir = "failed to create data directory"
)

const storeFileMode = 0o600

// FileStore хранит полный список заметок в одном JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore создает файловое хранилище по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ repositories.NoteStore = (*FileStore)(nil)

// LoadAll читает список заметок из файла. Отсутствующий или нечитаемый
// файл дает пустой список: локальное хранилище никогда не роняет запуск.
func (s *FileStore) LoadAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug(ctx, LogStoreMissing)
			return []*entities.Note{}, nil
		}
		log.Warn(ctx, LogStoreCorrupt, zap.Error(err))
		return []*entities.Note{}, nil
	}

	notes, err := entities.DecodeNotes(data)
	if err != nil {
		log.Warn(ctx, LogStoreCorrupt, zap.Error(err))
		return []*entities.Note{}, nil
	}

	log.Debug(ctx, LogStoreLoaded, zap.Int("count", len(notes)))
	return notes, nil
}

// SaveAll записывает список заметок атомарно: сначала во временный файл,
// затем rename поверх основного.
func (s *FileStore) SaveAll(ctx context.Context, notes []*entities.Note) error {
	log := logger.Log(ctx).With(zap.String("path", s.path))

	data, err := entities.EncodeNotes(notes)
	if err != nil {
		log.Error(ctx, ErrEncodeStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrEncodeStore, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Error(ctx, ErrCreateDataDir, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateDataDir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, storeFileMode); err != nil {
		log.Error(ctx, ErrWriteStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrWriteStore, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		log.Error(ctx, ErrReplaceStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrReplaceStore, err)
	}

	log.Debug(ctx, LogStoreSaved, zap.Int("count", len(notes)))
	return nil
}
