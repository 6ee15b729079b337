package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/codec"
	"notekeeper/internal/notekeeper/domain/entities"
)

func TestImport_PlainTextWrapsParagraphs(t *testing.T) {
	data := "first paragraph\n\nsecond paragraph\nwith a break"

	notes, err := codec.Import(codec.ImportFile{Name: "meeting notes.txt", Data: []byte(data)})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "meeting notes", notes[0].Title)
	assert.Equal(t, "<p>first paragraph</p><p>second paragraph<br>with a break</p>", notes[0].Content)
	assert.Equal(t, "meeting notes.txt", notes[0].OriginalFilename)
}

func TestImport_TextEscapesMarkup(t *testing.T) {
	notes, err := codec.Import(codec.ImportFile{Name: "raw.txt", Data: []byte("a <b> & c")})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Content, "&lt;b&gt;")
	assert.Contains(t, notes[0].Content, "&amp;")
}

func TestImport_Markdown(t *testing.T) {
	data := "# Heading\n\nSome **bold** text."

	notes, err := codec.Import(codec.ImportFile{Name: "doc.md", Data: []byte(data)})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "doc", notes[0].Title)
	assert.Contains(t, notes[0].Content, "<h1")
	assert.Contains(t, notes[0].Content, "<strong>bold</strong>")
}

func TestImport_HTMLExtractsBody(t *testing.T) {
	data := `<!DOCTYPE html><html><head><title>skip</title></head><body><p>kept</p></body></html>`

	notes, err := codec.Import(codec.ImportFile{Name: "page.html", Data: []byte(data)})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "<p>kept</p>", notes[0].Content)
	assert.NotContains(t, notes[0].Content, "<title>")
}

func TestImport_HTMLWithoutBodyTakenWhole(t *testing.T) {
	data := `<p>fragment</p>`

	notes, err := codec.Import(codec.ImportFile{Name: "fragment.html", Data: []byte(data)})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "<p>fragment</p>", notes[0].Content)
}

func TestImport_JSONBackupGetsFreshIDs(t *testing.T) {
	backup := entities.ExportEnvelope{
		Notes: []*entities.Note{
			entities.NewNote("One", "<p>1</p>"),
			entities.NewNote("Two", "<p>2</p>"),
			entities.NewNote("Three", "<p>3</p>"),
		},
		Version: entities.ExportVersion,
	}
	data, err := json.Marshal(backup)
	require.NoError(t, err)

	notes, err := codec.Import(codec.ImportFile{Name: "all-notes-backup-2026-08-30.json", Data: data})

	require.NoError(t, err)
	require.Len(t, notes, 3)

	seen := map[string]bool{}
	for i, note := range notes {
		assert.NotEqual(t, backup.Notes[i].ID, note.ID, "imported notes must get fresh ids")
		assert.False(t, seen[note.ID], "ids must be unique")
		seen[note.ID] = true
		assert.Equal(t, backup.Notes[i].Title, note.Title)
		assert.Equal(t, backup.Notes[i].Content, note.Content)
	}
}

func TestImport_JSONSingleNote(t *testing.T) {
	single := entities.NewNote("Solo", "<p>alone</p>")
	data, err := json.Marshal(single)
	require.NoError(t, err)

	notes, err := codec.Import(codec.ImportFile{Name: "solo.json", Data: data})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Solo", notes[0].Title)
	assert.NotEqual(t, single.ID, notes[0].ID)
}

func TestImport_InvalidJSONFallsBackToText(t *testing.T) {
	notes, err := codec.Import(codec.ImportFile{Name: "broken.json", Data: []byte("{not json at all")})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Content, "not json at all")
}

func TestImport_EmptyFile(t *testing.T) {
	_, err := codec.Import(codec.ImportFile{Name: "empty.txt", Data: []byte("   \n ")})
	assert.ErrorIs(t, err, codec.ErrEmptyFile)
}

func TestImportAll_SkipsBadFilesAndContinues(t *testing.T) {
	files := []codec.ImportFile{
		{Name: "good.txt", Data: []byte("content")},
		{Name: "empty.md", Data: []byte("")},
		{Name: "also-good.md", Data: []byte("# ok")},
	}

	result := codec.ImportAll(files)

	assert.Len(t, result.Notes, 2)
	assert.Equal(t, []string{"empty.md"}, result.Skipped)
}
