package codec

import (
	"regexp"
	"strings"
)

// Имя файла по умолчанию, когда заголовок не дает ни одного символа.
const fallbackFilename = "note"

// Предел длины основы имени файла.
const maxFilenameLength = 64

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeFilename превращает заголовок заметки в безопасную основу
// имени файла: не-алфавитноцифровые символы заменяются подчеркиванием,
// результат приводится к нижнему регистру и ограничивается по длине.
func SanitizeFilename(title string) string {
	name := nonAlnumRe.ReplaceAllString(title, "_")
	name = strings.Trim(name, "_")
	name = strings.ToLower(name)

	if len(name) > maxFilenameLength {
		name = strings.Trim(name[:maxFilenameLength], "_")
	}
	if name == "" {
		return fallbackFilename
	}
	return name
}
