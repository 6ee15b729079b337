// Package storage реализует адаптер персистентности: локальное файловое
// хранилище, опциональное удаленное документное хранилище и их слияние.
package storage

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"notekeeper/internal/notekeeper/domain/entities"
	"notekeeper/internal/notekeeper/ports/repositories"
	"notekeeper/pkg/logger"
)

// Mode - режим работы адаптера, виден через индикатор статуса.
type Mode string

// Режимы работы адаптера.
const (
	ModeRemote    Mode = "remote"
	ModeLocalOnly Mode = "local-only"
)

// Константы для сообщений logger.
const (
	LogRemoteUnavailable = "remote store unavailable, switching to local-only mode"
	LogRemoteSaveFailed  = "best-effort remote save failed"
	LogReconciled        = "local and remote stores reconciled"
	LogRemoteWriterDone  = "remote writer stopped"

	ErrSaveLocal = "failed to save notes to local store"
)

// Размер очереди отложенных записей в удаленное хранилище.
const remoteQueueSize = 16

// Adapter объединяет локальное и удаленное хранилища. Удаленное хранилище
// авторитетно при чтении, но его отказы никогда не доходят до вызывающего:
// адаптер до конца сессии переходит в режим local-only. Записи в удаленное
// хранилище выполняются в фоне одним writer, что сохраняет порядок.
type Adapter struct {
	local   repositories.NoteStore
	remote  repositories.NoteStore
	breaker *CircuitBreaker

	mu        sync.Mutex
	localOnly bool

	saveCh    chan []*entities.Note
	done      chan struct{}
	closeOnce sync.Once
}

// NewAdapter создает адаптер. remote может быть nil, тогда адаптер
// работает только с локальным хранилищем.
func NewAdapter(ctx context.Context, local, remote repositories.NoteStore, breakerCfg CircuitBreakerConfig) *Adapter {
	a := &Adapter{
		local:   local,
		remote:  remote,
		breaker: NewCircuitBreaker("remote-store", breakerCfg),
		saveCh:  make(chan []*entities.Note, remoteQueueSize),
		done:    make(chan struct{}),
	}

	if remote != nil {
		go a.remoteWriter(ctx)
	} else {
		close(a.done)
	}

	return a
}

// LoadAll загружает заметки. При доступном удаленном хранилище оба снимка
// сливаются (последняя запись побеждает), результат записывается обратно
// локально. Отказ удаленного хранилища переключает адаптер в local-only.
func (a *Adapter) LoadAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("component", "storage-adapter"))

	localNotes, err := a.local.LoadAll(ctx)
	if err != nil {
		// Локальное хранилище само деградирует до пустого списка,
		// сюда попадать не должно.
		localNotes = []*entities.Note{}
	}

	if a.remote == nil || a.isLocalOnly() {
		return localNotes, nil
	}

	var remoteNotes []*entities.Note
	loadErr := a.breaker.Execute(ctx, func() error {
		var err error
		remoteNotes, err = a.remote.LoadAll(ctx)
		return err
	})
	if loadErr != nil {
		log.Warn(ctx, LogRemoteUnavailable, zap.Error(loadErr))
		a.setLocalOnly()
		return localNotes, nil
	}

	merged := Reconcile(localNotes, remoteNotes)
	log.Info(ctx, LogReconciled,
		zap.Int("local", len(localNotes)),
		zap.Int("remote", len(remoteNotes)),
		zap.Int("merged", len(merged)))

	if err := a.local.SaveAll(ctx, merged); err != nil {
		log.Warn(ctx, ErrSaveLocal, zap.Error(err))
	}
	a.enqueueRemoteSave(merged)

	return merged, nil
}

// SaveAll записывает список заметок: локально синхронно и безусловно,
// удаленно в фоне по мере возможности.
func (a *Adapter) SaveAll(ctx context.Context, notes []*entities.Note) error {
	if err := a.local.SaveAll(ctx, notes); err != nil {
		return fmt.Errorf("%s: %w", ErrSaveLocal, err)
	}

	if a.remote != nil && !a.isLocalOnly() {
		a.enqueueRemoteSave(notes)
	}

	return nil
}

// CurrentMode возвращает наблюдаемый режим адаптера.
func (a *Adapter) CurrentMode() Mode {
	if a.remote == nil || a.isLocalOnly() || a.breaker.GetState() == StateOpen {
		return ModeLocalOnly
	}
	return ModeRemote
}

// Close останавливает фоновую запись в удаленное хранилище.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		close(a.saveCh)
	})
	<-a.done
}

func (a *Adapter) isLocalOnly() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.localOnly
}

func (a *Adapter) setLocalOnly() {
	a.mu.Lock()
	a.localOnly = true
	a.mu.Unlock()
}

// enqueueRemoteSave ставит снимок в очередь writer. Очередь ограничена:
// при переполнении вытесняется самый старый снимок - каждый снимок несет
// полное состояние, так что потеря промежуточного не теряет правок.
// Вытеснение повторяется до успешной постановки: свежий снимок не может
// быть отброшен в пользу устаревших.
func (a *Adapter) enqueueRemoteSave(notes []*entities.Note) {
	snapshot := make([]*entities.Note, len(notes))
	for i, note := range notes {
		snapshot[i] = note.Clone()
	}

	for {
		select {
		case a.saveCh <- snapshot:
			return
		default:
		}
		select {
		case <-a.saveCh:
		default:
		}
	}
}

// remoteWriter последовательно применяет снимки к удаленному хранилищу,
// сохраняя порядок выдачи записей.
func (a *Adapter) remoteWriter(ctx context.Context) {
	defer close(a.done)
	log := logger.Log(ctx).With(zap.String("component", "remote-writer"))

	for snapshot := range a.saveCh {
		err := a.breaker.Execute(ctx, func() error {
			return a.remote.SaveAll(ctx, snapshot)
		})
		if err != nil {
			log.Debug(ctx, LogRemoteSaveFailed, zap.Error(err))
		}
	}

	log.Debug(ctx, LogRemoteWriterDone)
}
