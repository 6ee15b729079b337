package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgstore "notekeeper/internal/notekeeper/adapters/postgres"
	"notekeeper/internal/notekeeper/domain/entities"
)

func TestNoteStore_LoadAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "title", "content", "created_at", "updated_at", "original_filename"}).
		AddRow("n1", "First", "<p>one</p>", t1.Add(-time.Hour), t1, "").
		AddRow("n2", "Second", "<p>two</p>", t1.Add(-2*time.Hour), t1.Add(-time.Minute), "import.md")

	mock.ExpectQuery("SELECT id, title, content, created_at, updated_at, original_filename").
		WillReturnRows(rows)

	store := pgstore.NewNoteStore(mock)
	notes, err := store.LoadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "First", notes[0].Title)
	assert.Equal(t, "import.md", notes[1].OriginalFilename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteStore_LoadAllQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, content").
		WillReturnError(errors.New("connection refused"))

	store := pgstore.NewNoteStore(mock)
	notes, err := store.LoadAll(context.Background())

	require.Error(t, err)
	assert.Nil(t, notes)
	assert.Contains(t, err.Error(), "failed to query notes")
}

func TestNoteStore_SaveAllReplacesSnapshot(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	note := entities.NewNote("Backup", "<p>content</p>")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notes").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO notes").
		WithArgs(note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt, note.OriginalFilename).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	store := pgstore.NewNoteStore(mock)
	err = store.SaveAll(context.Background(), []*entities.Note{note})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteStore_SaveAllRollsBackOnInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	note := entities.NewNote("Broken", "<p>content</p>")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notes").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO notes").
		WithArgs(note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt, note.OriginalFilename).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	store := pgstore.NewNoteStore(mock)
	err = store.SaveAll(context.Background(), []*entities.Note{note})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert note")
	assert.NoError(t, mock.ExpectationsWereMet())
}
