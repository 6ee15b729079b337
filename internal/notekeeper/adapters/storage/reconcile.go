package storage

import (
	"sort"

	"notekeeper/internal/notekeeper/domain/entities"
)

// Reconcile объединяет два снимка списка заметок. Заметки, присутствующие
// только в одном снимке, сохраняются; при совпадении id побеждает запись
// с большим updatedAt. Результат не зависит от порядка аргументов:
// слияние идет по id, ничья по updatedAt разрешается сравнением остальных
// полей записи, а вывод детерминированно отсортирован по updatedAt
// (убывание) с разрешением ничьих по id.
func Reconcile(a, b []*entities.Note) []*entities.Note {
	merged := make(map[string]*entities.Note, len(a)+len(b))

	for _, note := range a {
		merged[note.ID] = note
	}
	for _, note := range b {
		current, ok := merged[note.ID]
		if !ok || newerThan(note, current) {
			merged[note.ID] = note
		}
	}

	result := make([]*entities.Note, 0, len(merged))
	for _, note := range merged {
		result = append(result, note.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// newerThan сравнивает две версии одной заметки. Ничья по updatedAt
// разрешается по всем оставшимся полям, чтобы победитель не зависел от
// порядка обхода снимков.
func newerThan(candidate, current *entities.Note) bool {
	if !candidate.UpdatedAt.Equal(current.UpdatedAt) {
		return candidate.UpdatedAt.After(current.UpdatedAt)
	}
	if candidate.Title != current.Title {
		return candidate.Title > current.Title
	}
	if candidate.Content != current.Content {
		return candidate.Content > current.Content
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.OriginalFilename > current.OriginalFilename
}
