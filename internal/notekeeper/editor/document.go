// Package editor реализует операции редактора над разметкой заметки:
// форматирование, вставку таблиц и изображений, перехват вставки из
// буфера и изменение размера изображений.
package editor

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

// Значения по умолчанию для вставки таблицы.
const (
	DefaultTableRows = 3
	DefaultTableCols = 3
	tableCellText    = "Cell"
	maxTableSide     = 50
)

// DefaultImageWidth - стартовая ширина вставленного изображения в пикселях.
const DefaultImageWidth = 400

// ErrNoSelection возвращается, когда формат применяется без выделения.
var ErrNoSelection = errors.New("nothing selected")

// ErrUnknownFormat возвращается для неизвестной команды форматирования.
var ErrUnknownFormat = errors.New("unknown format command")

// Selection - полуинтервал [Start, End) в байтах содержимого.
type Selection struct {
	Start int
	End   int
}

// Document - редактируемая разметка с позицией курсора и выделением.
type Document struct {
	Content   string
	Cursor    int
	Selection Selection
}

// NewDocument создает документ с курсором в конце содержимого.
func NewDocument(content string) *Document {
	return &Document{Content: content, Cursor: len(content)}
}

// Теги команд форматирования.
var formatTags = map[string]string{
	"bold":      "strong",
	"italic":    "em",
	"underline": "u",
	"h1":        "h1",
	"h2":        "h2",
	"h3":        "h3",
}

// ApplyFormat оборачивает выделение тегом команды форматирования.
func (d *Document) ApplyFormat(command string) error {
	tag, ok := formatTags[command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, command)
	}

	sel := d.clampSelection()
	if sel.Start == sel.End {
		return ErrNoSelection
	}

	selected := d.Content[sel.Start:sel.End]
	wrapped := "<" + tag + ">" + selected + "</" + tag + ">"
	d.Content = d.Content[:sel.Start] + wrapped + d.Content[sel.End:]
	d.Cursor = sel.Start + len(wrapped)
	d.Selection = Selection{Start: d.Cursor, End: d.Cursor}
	return nil
}

// InsertTable вставляет таблицу в позицию курсора. Неположительные или
// чрезмерные размеры заменяются значениями по умолчанию. После таблицы
// добавляется пустой абзац, чтобы курсор мог встать за ней.
func (d *Document) InsertTable(rows, cols int) {
	if rows <= 0 || rows > maxTableSide {
		rows = DefaultTableRows
	}
	if cols <= 0 || cols > maxTableSide {
		cols = DefaultTableCols
	}

	var b strings.Builder
	b.WriteString(`<table><tbody>`)
	for r := 0; r < rows; r++ {
		b.WriteString("<tr>")
		for c := 0; c < cols; c++ {
			b.WriteString("<td>" + tableCellText + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString(`</tbody></table><p><br></p>`)

	d.insertAtCursor(b.String())
}

// InsertImage вставляет изображение, обернутое в контейнер с четырьмя
// угловыми ручками изменения размера. Стартовая ширина фиксированная.
func (d *Document) InsertImage(src string) {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="image-wrapper" style="width: %dpx;">`, DefaultImageWidth)
	b.WriteString(`<img src="` + src + `" alt="">`)
	for _, corner := range []string{"nw", "ne", "sw", "se"} {
		b.WriteString(`<div class="resize-handle ` + corner + `"></div>`)
	}
	b.WriteString(`</div><p><br></p>`)

	d.insertAtCursor(b.String())
}

// PasteItem - один элемент буфера обмена.
type PasteItem struct {
	Kind string // "image" или "text"
	Data string // data-URI для изображений, иначе текст
}

// HandlePaste обрабатывает вставку из буфера. Изображения перехватываются
// и вставляются через InsertImage, текст вставляется с экранированием.
// Возвращает true, если хотя бы один элемент был применен.
func (d *Document) HandlePaste(items []PasteItem) bool {
	applied := false
	for _, item := range items {
		switch item.Kind {
		case "image":
			d.InsertImage(item.Data)
			applied = true
		case "text":
			if item.Data == "" {
				continue
			}
			d.insertAtCursor(html.EscapeString(item.Data))
			applied = true
		}
	}
	return applied
}

func (d *Document) insertAtCursor(fragment string) {
	at := d.Cursor
	if at < 0 || at > len(d.Content) {
		at = len(d.Content)
	}
	d.Content = d.Content[:at] + fragment + d.Content[at:]
	d.Cursor = at + len(fragment)
	d.Selection = Selection{Start: d.Cursor, End: d.Cursor}
}

func (d *Document) clampSelection() Selection {
	sel := d.Selection
	if sel.Start > sel.End {
		sel.Start, sel.End = sel.End, sel.Start
	}
	if sel.Start < 0 {
		sel.Start = 0
	}
	if sel.End > len(d.Content) {
		sel.End = len(d.Content)
	}
	if sel.Start > len(d.Content) {
		sel.Start = len(d.Content)
	}
	return sel
}
