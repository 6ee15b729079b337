package app

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"notekeeper/internal/notekeeper/app/dto"
	"notekeeper/internal/notekeeper/codec"
	"notekeeper/internal/notekeeper/domain/entities"
)

// Длина превью в списке заметок.
const previewLength = 60

// Stats возвращает счетчики слов и символов по тексту заметки.
func (r *Repository) Stats(ctx context.Context, id string) (dto.NoteStats, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return dto.NoteStats{}, err
	}

	text := codec.StripHTML(note.Content)
	return dto.NoteStats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}, nil
}

// Summaries проецирует заметки в строки списка.
func (r *Repository) Summaries(ctx context.Context, notes []*entities.Note) []dto.NoteSummary {
	current := r.Current(ctx)

	summaries := make([]dto.NoteSummary, 0, len(notes))
	for _, note := range notes {
		summaries = append(summaries, dto.NoteSummary{
			ID:        note.ID,
			Title:     note.DisplayTitle(),
			Preview:   preview(note.Content),
			UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
			Current:   current != nil && current.ID == note.ID,
		})
	}
	return summaries
}

// preview обрезает текст заметки до длины превью по границе руны.
func preview(content string) string {
	text := strings.TrimSpace(codec.StripHTML(content))
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}
