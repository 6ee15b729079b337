// Package services содержит реализации сервисных портов: хеширование
// пароля и выпуск сессионных токенов.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/notekeeper/ports/services"
)

// Константы для сообщений об ошибках.
const (
	ErrHashPassword = "failed to hash password"
)

// BcryptService реализует PasswordService через bcrypt.
type BcryptService struct {
	cost int
}

var _ services.PasswordService = (*BcryptService)(nil)

// NewBcryptService создает сервис с заданной стоимостью хеширования.
// При cost вне допустимого диапазона используется bcrypt.DefaultCost.
func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля.
func (s *BcryptService) Hash(_ context.Context, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrHashPassword, err)
	}
	return string(hash), nil
}

// Verify проверяет пароль против сохраненного хеша.
func (s *BcryptService) Verify(_ context.Context, password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
