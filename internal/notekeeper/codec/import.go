package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"notekeeper/internal/notekeeper/domain/entities"
)

// ErrEmptyFile возвращается, когда импортируемый файл пуст.
var ErrEmptyFile = errors.New("import file is empty")

// ImportFile - один загруженный файл импорта.
type ImportFile struct {
	Name string
	Data []byte
}

// ImportResult - итог пакетного импорта: созданные заметки и имена
// файлов, которые не удалось разобрать.
type ImportResult struct {
	Notes   []*entities.Note
	Skipped []string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var bodyRe = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

// Import разбирает один файл в заметки. Каждая заметка получает свежий
// идентификатор; исходное имя файла сохраняется для истории.
func Import(file ImportFile) ([]*entities.Note, error) {
	if len(bytes.TrimSpace(file.Data)) == 0 {
		return nil, ErrEmptyFile
	}

	switch strings.ToLower(filepath.Ext(file.Name)) {
	case ".json":
		return importJSON(file)
	case ".md", ".markdown":
		return importMarkdown(file)
	case ".html", ".htm":
		return importHTML(file)
	default:
		return importText(file)
	}
}

// ImportAll разбирает набор файлов. Файл, который не удалось разобрать,
// пропускается и не прерывает импорт остальных.
func ImportAll(files []ImportFile) ImportResult {
	var result ImportResult
	for _, file := range files {
		notes, err := Import(file)
		if err != nil {
			result.Skipped = append(result.Skipped, file.Name)
			continue
		}
		result.Notes = append(result.Notes, notes...)
	}
	return result
}

// importJSON принимает резервную копию с массивом notes, одиночную
// заметку или, на крайний случай, произвольный текст.
func importJSON(file ImportFile) ([]*entities.Note, error) {
	var envelope entities.ExportEnvelope
	if err := json.Unmarshal(file.Data, &envelope); err == nil && envelope.Notes != nil {
		notes := make([]*entities.Note, 0, len(envelope.Notes))
		for _, src := range envelope.Notes {
			note := entities.NewNote(src.Title, src.Content)
			note.OriginalFilename = file.Name
			notes = append(notes, note)
		}
		if len(notes) == 0 {
			return nil, fmt.Errorf("backup contains no notes")
		}
		return notes, nil
	}

	var single entities.Note
	if err := json.Unmarshal(file.Data, &single); err == nil && (single.Title != "" || single.Content != "") {
		note := entities.NewNote(single.Title, single.Content)
		note.OriginalFilename = file.Name
		return []*entities.Note{note}, nil
	}

	return importText(file)
}

func importMarkdown(file ImportFile) ([]*entities.Note, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(file.Data, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	note := entities.NewNote(titleFromFilename(file.Name), buf.String())
	note.OriginalFilename = file.Name
	return []*entities.Note{note}, nil
}

// importHTML извлекает содержимое body; документ без body берется целиком.
func importHTML(file ImportFile) ([]*entities.Note, error) {
	content := string(file.Data)
	if m := bodyRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	content = strings.TrimSpace(content)

	note := entities.NewNote(titleFromFilename(file.Name), content)
	note.OriginalFilename = file.Name
	return []*entities.Note{note}, nil
}

// importText оборачивает абзацы простого текста в разметку.
func importText(file ImportFile) ([]*entities.Note, error) {
	note := entities.NewNote(titleFromFilename(file.Name), wrapParagraphs(string(file.Data)))
	note.OriginalFilename = file.Name
	return []*entities.Note{note}, nil
}

// wrapParagraphs делит текст по пустым строкам и оборачивает каждый
// абзац в <p>, экранируя разметку.
func wrapParagraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		escaped := html.EscapeString(paragraph)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		b.WriteString("<p>" + escaped + "</p>")
	}
	if b.Len() == 0 {
		return entities.EmptyContent
	}
	return b.String()
}

func titleFromFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
