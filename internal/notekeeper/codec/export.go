package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"notekeeper/internal/notekeeper/domain/entities"
)

// Format - формат экспорта одной заметки.
type Format string

// Поддерживаемые форматы экспорта.
const (
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// ErrUnknownFormat возвращается для неподдерживаемого формата экспорта.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat разбирает формат из строки запроса.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType возвращает MIME-тип файла экспорта.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// ExportNote сериализует заметку в выбранный формат.
func ExportNote(note *entities.Note, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return exportText(note), nil
	case FormatHTML:
		return exportHTML(note), nil
	case FormatJSON:
		return exportJSON(note)
	case FormatMarkdown:
		return exportMarkdown(note), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ExportFilename строит имя файла экспорта из заголовка заметки.
func ExportFilename(note *entities.Note, format Format) string {
	return SanitizeFilename(note.DisplayTitle()) + "." + string(format)
}

// ExportAll сериализует полный список заметок в резервную копию JSON.
func ExportAll(notes []*entities.Note, now time.Time) ([]byte, error) {
	envelope := entities.ExportEnvelope{
		Notes:      notes,
		ExportedAt: now.UTC(),
		Version:    entities.ExportVersion,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// ExportAllFilename строит имя файла резервной копии с датой экспорта.
func ExportAllFilename(now time.Time) string {
	return "all-notes-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

func exportText(note *entities.Note) []byte {
	var b strings.Builder
	b.WriteString(note.DisplayTitle())
	b.WriteString("\n\n")
	b.WriteString(StripHTML(note.Content))
	b.WriteString("\n")
	return []byte(b.String())
}

func exportHTML(note *entities.Note) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + note.DisplayTitle() + "</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: Arial, sans-serif; max-width: 800px; margin: 40px auto; padding: 0 20px; line-height: 1.6; }\n")
	b.WriteString("img { max-width: 100%; height: auto; }\n")
	b.WriteString("table { border-collapse: collapse; width: 100%; }\n")
	b.WriteString("td, th { border: 1px solid #ccc; padding: 8px; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString("<h1>" + note.DisplayTitle() + "</h1>\n")
	b.WriteString(note.Content)
	b.WriteString("\n</body>\n</html>\n")
	return []byte(b.String())
}

func exportJSON(note *entities.Note) ([]byte, error) {
	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode note: %w", err)
	}
	return data, nil
}

// Порядок правил имеет значение: блочные элементы разбираются раньше
// строчных, остаточные теги вычищаются последними.
var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`), "# $1\n\n"},
	{regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`), "## $1\n\n"},
	{regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`), "### $1\n\n"},
	{regexp.MustCompile(`(?is)<strong[^>]*>(.*?)</strong>`), "**$1**"},
	{regexp.MustCompile(`(?is)<b[^>]*>(.*?)</b>`), "**$1**"},
	{regexp.MustCompile(`(?is)<em[^>]*>(.*?)</em>`), "*$1*"},
	{regexp.MustCompile(`(?is)<i[^>]*>(.*?)</i>`), "*$1*"},
	{regexp.MustCompile(`(?is)<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`), "[$2]($1)"},
	{regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`), "$1\n\n"},
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`<[^>]*>`), ""},
}

// htmlToMarkdown переводит разметку заметки в Markdown набором
// последовательных замен.
func htmlToMarkdown(markup string) string {
	text := markup
	for _, rule := range markdownRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return strings.TrimSpace(text)
}

func exportMarkdown(note *entities.Note) []byte {
	var b strings.Builder
	b.WriteString("# " + note.DisplayTitle() + "\n\n")
	b.WriteString(htmlToMarkdown(note.Content))
	b.WriteString("\n")
	return []byte(b.String())
}
