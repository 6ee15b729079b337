package repositories

import "context"

// CredentialStore - порт к хранилищу хэша учетных данных администратора.
type CredentialStore interface {
	// Load возвращает сохраненный хэш учетных данных. Пустая строка
	// означает, что учетные данные еще не заданы.
	Load(ctx context.Context) (string, error)
	// Store перезаписывает сохраненный хэш учетных данных.
	Store(ctx context.Context, hash string) error
}
