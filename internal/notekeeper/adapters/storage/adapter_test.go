package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/adapters/storage"
	"notekeeper/internal/notekeeper/domain/entities"
)

// fakeStore - управляемое хранилище для тестов адаптера.
type fakeStore struct {
	mu        sync.Mutex
	notes     []*entities.Note
	loadErr   error
	saveErr   error
	saveCalls int
}

func (s *fakeStore) LoadAll(_ context.Context) ([]*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.notes, nil
}

func (s *fakeStore) SaveAll(_ context.Context, notes []*entities.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.notes = notes
	return nil
}

func (s *fakeStore) snapshot() []*entities.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

func (s *fakeStore) saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

func TestAdapter_LoadAllMergesRemoteAndLocal(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	local := &fakeStore{notes: []*entities.Note{noteAt("a", "local", t1)}}
	remote := &fakeStore{notes: []*entities.Note{noteAt("b", "remote", t1.Add(time.Minute))}}

	adapter := storage.NewAdapter(ctx, local, remote, storage.DefaultCircuitBreakerConfig())
	defer adapter.Close()

	merged, err := adapter.LoadAll(ctx)

	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, storage.ModeRemote, adapter.CurrentMode())

	// Слитый список записан обратно в локальное хранилище.
	assert.Len(t, local.snapshot(), 2)
}

func TestAdapter_RemoteFailureLatchesLocalOnly(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	local := &fakeStore{notes: []*entities.Note{noteAt("a", "local", t1)}}
	remote := &fakeStore{loadErr: errors.New("connection refused")}

	adapter := storage.NewAdapter(ctx, local, remote, storage.DefaultCircuitBreakerConfig())
	defer adapter.Close()

	notes, err := adapter.LoadAll(ctx)

	require.NoError(t, err, "remote failure must not propagate")
	require.Len(t, notes, 1)
	assert.Equal(t, storage.ModeLocalOnly, adapter.CurrentMode())

	// После защелки удаленное хранилище не трогается даже на запись.
	before := remote.saves()
	require.NoError(t, adapter.SaveAll(ctx, notes))
	adapter.Close()
	assert.Equal(t, before, remote.saves())
}

func TestAdapter_SaveAllWritesLocalSynchronously(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	local := &fakeStore{}
	remote := &fakeStore{}

	adapter := storage.NewAdapter(ctx, local, remote, storage.DefaultCircuitBreakerConfig())

	notes := []*entities.Note{noteAt("a", "one", t1)}
	require.NoError(t, adapter.SaveAll(ctx, notes))
	assert.Len(t, local.snapshot(), 1)

	// Close дожидается фоновой записи в удаленное хранилище.
	adapter.Close()
	assert.Len(t, remote.snapshot(), 1)
}

func TestAdapter_SaveAllPropagatesLocalError(t *testing.T) {
	ctx := context.Background()

	local := &fakeStore{saveErr: errors.New("disk full")}
	adapter := storage.NewAdapter(ctx, local, nil, storage.DefaultCircuitBreakerConfig())
	defer adapter.Close()

	err := adapter.SaveAll(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save notes to local store")
}

func TestAdapter_WithoutRemoteReportsLocalOnly(t *testing.T) {
	ctx := context.Background()

	adapter := storage.NewAdapter(ctx, &fakeStore{}, nil, storage.DefaultCircuitBreakerConfig())
	defer adapter.Close()

	assert.Equal(t, storage.ModeLocalOnly, adapter.CurrentMode())

	notes, err := adapter.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
