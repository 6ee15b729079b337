package services

import "context"

// PasswordService - порт к сервису хэширования учетных данных.
type PasswordService interface {
	// Hash хэширует секрет для долговременного хранения.
	Hash(ctx context.Context, password string) (string, error)
	// Verify проверяет соответствие секрета сохраненному хэшу.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
