// Package entities defines the domain entities for the notekeeper service.
package entities

import (
	"crypto/rand"
	"strconv"
	"time"
)

// EmptyContent - содержимое новой пустой заметки.
const EmptyContent = "<p><br></p>"

// UntitledTitle отображается вместо пустого заголовка.
const UntitledTitle = "Untitled Note"

// Note представляет собой одну заметку с rich-text содержимым.
type Note struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	OriginalFilename string    `json:"originalFilename,omitempty"`
}

// NewNote создает новую заметку с заданным заголовком и содержимым.
func NewNote(title, content string) *Note {
	now := time.Now().UTC()
	if content == "" {
		content = EmptyContent
	}
	return &Note{
		ID:        NewNoteID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayTitle возвращает заголовок для отображения в списке.
func (n *Note) DisplayTitle() string {
	if n.Title == "" {
		return UntitledTitle
	}
	return n.Title
}

// Touch обновляет время последнего изменения.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UTC()
}

// Clone возвращает независимую копию заметки.
func (n *Note) Clone() *Note {
	clone := *n
	return &clone
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewNoteID генерирует идентификатор заметки: время в base36 плюс
// случайный суффикс. Идентификаторы никогда не переиспользуются.
func NewNoteID() string {
	buf := make([]byte, 9)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(buf)
}
