package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/adapters/storage"
	"notekeeper/internal/notekeeper/domain/entities"
)

func noteAt(id, title string, updatedAt time.Time) *entities.Note {
	return &entities.Note{
		ID:        id,
		Title:     title,
		Content:   "<p>" + title + "</p>",
		CreatedAt: updatedAt.Add(-time.Hour),
		UpdatedAt: updatedAt,
	}
}

func TestReconcile_NewerWins(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)

	local := []*entities.Note{noteAt("a", "stale", t1)}
	remote := []*entities.Note{noteAt("a", "fresh", t2)}

	merged := storage.Reconcile(local, remote)

	require.Len(t, merged, 1)
	assert.Equal(t, "fresh", merged[0].Title)
	assert.True(t, merged[0].UpdatedAt.Equal(t2))
}

func TestReconcile_KeepsNotesPresentOnOneSideOnly(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	local := []*entities.Note{noteAt("only-local", "local", t1)}
	remote := []*entities.Note{noteAt("only-remote", "remote", t1.Add(time.Minute))}

	merged := storage.Reconcile(local, remote)

	require.Len(t, merged, 2)
	ids := []string{merged[0].ID, merged[1].ID}
	assert.Contains(t, ids, "only-local")
	assert.Contains(t, ids, "only-remote")
}

func TestReconcile_Commutative(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	a := []*entities.Note{
		noteAt("x", "one", t1),
		noteAt("y", "two", t1.Add(time.Minute)),
		noteAt("z", "conflict-a", t1.Add(2*time.Minute)),
	}
	b := []*entities.Note{
		noteAt("z", "conflict-b", t1.Add(2*time.Minute)),
		noteAt("w", "four", t1.Add(3*time.Minute)),
	}

	ab := storage.Reconcile(a, b)
	ba := storage.Reconcile(b, a)

	require.Equal(t, len(ab), len(ba))
	for i := range ab {
		assert.Equal(t, ab[i].ID, ba[i].ID)
		assert.Equal(t, ab[i].Title, ba[i].Title)
		assert.Equal(t, ab[i].Content, ba[i].Content)
	}
}

func TestReconcile_CommutativeOnFullTimestampTie(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// Одинаковые id, updatedAt, заголовок и содержимое; отличаются только
	// createdAt и имя исходного файла. Победитель не должен зависеть от
	// порядка аргументов.
	older := noteAt("x", "same", t1)
	older.CreatedAt = t1.Add(-2 * time.Hour)
	newer := noteAt("x", "same", t1)
	newer.CreatedAt = t1.Add(-time.Hour)
	newer.OriginalFilename = "imported.md"

	ab := storage.Reconcile([]*entities.Note{older}, []*entities.Note{newer})
	ba := storage.Reconcile([]*entities.Note{newer}, []*entities.Note{older})

	require.Len(t, ab, 1)
	require.Len(t, ba, 1)
	assert.Equal(t, ab[0], ba[0])
	assert.True(t, ab[0].CreatedAt.Equal(newer.CreatedAt))
	assert.Equal(t, "imported.md", ab[0].OriginalFilename)
}

func TestReconcile_SortsByUpdatedAtDescending(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	merged := storage.Reconcile(
		[]*entities.Note{noteAt("old", "old", t1)},
		[]*entities.Note{
			noteAt("new", "new", t1.Add(time.Hour)),
			noteAt("mid", "mid", t1.Add(time.Minute)),
		},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, "new", merged[0].ID)
	assert.Equal(t, "mid", merged[1].ID)
	assert.Equal(t, "old", merged[2].ID)
}

func TestReconcile_ReturnsClones(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	original := noteAt("a", "title", t1)

	merged := storage.Reconcile([]*entities.Note{original}, nil)

	require.Len(t, merged, 1)
	merged[0].Title = "mutated"
	assert.Equal(t, "title", original.Title)
}
