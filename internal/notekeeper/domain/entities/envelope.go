package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExportVersion - версия формата массового экспорта.
const ExportVersion = "1.0"

// ListEnvelope - формат хранения полного списка заметок.
type ListEnvelope struct {
	Notes []*Note `json:"notes"`
}

// ExportEnvelope - формат массового экспорта/импорта заметок.
type ExportEnvelope struct {
	Notes      []*Note   `json:"notes"`
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// EncodeNotes сериализует список заметок в конверт хранения.
func EncodeNotes(notes []*Note) ([]byte, error) {
	data, err := json.Marshal(ListEnvelope{Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("encoding note list: %w", err)
	}
	return data, nil
}

// DecodeNotes разбирает сохраненный список заметок. Принимает как конверт
// {"notes": [...]}, так и голый массив - оба формата встречаются в
// существующих выгрузках.
func DecodeNotes(data []byte) ([]*Note, error) {
	var envelope ListEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Notes != nil {
		return envelope.Notes, nil
	}

	var bare []*Note
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decoding note list: %w", err)
	}
	return bare, nil
}
