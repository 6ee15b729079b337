// Package codec отвечает за преобразования содержимого заметок:
// текстовая проекция, экспорт в txt/html/json/markdown и импорт файлов.
package codec

import (
	"html"
	"regexp"
	"strings"
)

var (
	blockBreakRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|table)>|<br\s*/?>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`[ \t]+`)
)

// StripHTML возвращает текстовую проекцию разметки: теги удаляются,
// границы блоков превращаются в пробелы, сущности декодируются.
func StripHTML(markup string) string {
	text := blockBreakRe.ReplaceAllString(markup, " ")
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
