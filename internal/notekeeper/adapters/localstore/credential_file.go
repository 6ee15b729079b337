package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"notekeeper/internal/notekeeper/ports/repositories"
)

// Константы для сообщений об ошибках.
const (
	ErrReadCredential  = "failed to read credential file"
	ErrWriteCredential = "failed to write credential file"
)

// CredentialFile хранит хеш пароля администратора в отдельном файле.
type CredentialFile struct {
	path string
}

var _ repositories.CredentialStore = (*CredentialFile)(nil)

// NewCredentialFile создает хранилище учетных данных по заданному пути.
func NewCredentialFile(path string) *CredentialFile {
	return &CredentialFile{path: path}
}

// Load возвращает сохраненный хеш пароля. Отсутствие файла не является
// ошибкой: возвращается пустая строка, пароль еще не установлен.
func (c *CredentialFile) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", ErrReadCredential, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Store атомарно записывает хеш пароля.
func (c *CredentialFile) Store(_ context.Context, hash string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteCredential, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(hash+"\n"), 0o600); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteCredential, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteCredential, err)
	}
	return nil
}
