package codec_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/codec"
	"notekeeper/internal/notekeeper/domain/entities"
)

func TestExportNote_Text(t *testing.T) {
	note := entities.NewNote("Ops Runbook", "<p>step <strong>one</strong></p><p>step two</p>")

	data, err := codec.ExportNote(note, codec.FormatText)

	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Ops Runbook\n\n")
	assert.Contains(t, text, "step one")
	assert.NotContains(t, text, "<p>")
}

func TestExportNote_TextUsesUntitledFallback(t *testing.T) {
	note := entities.NewNote("", "<p>body</p>")

	data, err := codec.ExportNote(note, codec.FormatText)

	require.NoError(t, err)
	assert.Contains(t, string(data), entities.UntitledTitle)
}

func TestExportNote_HTMLIsStandaloneDocument(t *testing.T) {
	note := entities.NewNote("Ops Runbook", "<p>content</p>")

	data, err := codec.ExportNote(note, codec.FormatHTML)

	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<title>Ops Runbook</title>")
	assert.Contains(t, doc, "<p>content</p>")
	assert.Contains(t, doc, "font-family", "inline styles must survive standalone")
}

func TestExportNote_JSONRoundTrip(t *testing.T) {
	note := entities.NewNote("Ops Runbook", "<p>content</p>")

	data, err := codec.ExportNote(note, codec.FormatJSON)
	require.NoError(t, err)

	var decoded entities.Note
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, note.ID, decoded.ID)
	assert.Equal(t, note.Title, decoded.Title)
	assert.Equal(t, note.Content, decoded.Content)
}

func TestExportNote_Markdown(t *testing.T) {
	note := entities.NewNote("Doc",
		`<h2>Setup</h2><p>Run <strong>make</strong> and <em>wait</em>.</p><p>See <a href="https://example.com">docs</a>.</p>`)

	data, err := codec.ExportNote(note, codec.FormatMarkdown)

	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Doc")
	assert.Contains(t, md, "## Setup")
	assert.Contains(t, md, "**make**")
	assert.Contains(t, md, "*wait*")
	assert.Contains(t, md, "[docs](https://example.com)")
	assert.NotContains(t, md, "<p>")
}

func TestExportNote_MarkdownStripsUnknownTags(t *testing.T) {
	note := entities.NewNote("Doc", `<div class="x"><span>plain</span></div>`)

	data, err := codec.ExportNote(note, codec.FormatMarkdown)

	require.NoError(t, err)
	assert.Equal(t, "# Doc\n\nplain\n", string(data))
}

func TestExportAll_EnvelopeFormat(t *testing.T) {
	notes := []*entities.Note{
		entities.NewNote("One", "<p>1</p>"),
		entities.NewNote("Two", "<p>2</p>"),
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	data, err := codec.ExportAll(notes, now)
	require.NoError(t, err)

	var envelope entities.ExportEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Len(t, envelope.Notes, 2)
	assert.Equal(t, entities.ExportVersion, envelope.Version)
	assert.True(t, envelope.ExportedAt.Equal(now))
}

func TestExportAllFilename_CarriesDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "all-notes-backup-2026-08-30.json", codec.ExportAllFilename(now))
}

func TestExportFilename(t *testing.T) {
	note := entities.NewNote("Ops Runbook: Q3!", "")
	assert.Equal(t, "ops_runbook_q3.md", codec.ExportFilename(note, codec.FormatMarkdown))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    codec.Format
		wantErr bool
	}{
		{"txt", codec.FormatText, false},
		{"HTML", codec.FormatHTML, false},
		{"json", codec.FormatJSON, false},
		{"", codec.FormatJSON, false},
		{"markdown", codec.FormatMarkdown, false},
		{"md", codec.FormatMarkdown, false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		got, err := codec.ParseFormat(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, codec.ErrUnknownFormat, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Ops Runbook", "ops_runbook"},
		{"hello---world!!!", "hello_world"},
		{"", "note"},
		{"!!!", "note"},
		{"MiXeD CaSe 123", "mixed_case_123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, codec.SanitizeFilename(tt.title), "title %q", tt.title)
	}
}

func TestSanitizeFilename_CapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "abcdefghij"
	}

	got := codec.SanitizeFilename(long)
	assert.LessOrEqual(t, len(got), 64)
	assert.NotEmpty(t, got)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "one two", codec.StripHTML("<p>one</p><p>two</p>"))
	assert.Equal(t, "a b", codec.StripHTML("a<br>b"))
	assert.Equal(t, "x < y", codec.StripHTML("<p>x &lt; y</p>"))
	assert.Equal(t, "", codec.StripHTML(entities.EmptyContent))
}
