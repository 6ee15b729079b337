// Package dto содержит объекты переноса данных между HTTP-слоем и
// прикладным слоем.
package dto

import (
	"notekeeper/internal/notekeeper/domain/entities"
)

// NoteStats - счетчики по тексту заметки без разметки.
type NoteStats struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// NoteSummary - строка списка заметок: заголовок, короткое превью текста
// и время последней правки.
type NoteSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
	UpdatedAt string `json:"updatedAt"`
	Current   bool   `json:"current"`
}

// LoginRequest - запрос входа администратора.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse - ответ на успешный вход.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ChangeCredentialRequest - запрос смены пароля.
type ChangeCredentialRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// StatusResponse - состояние сервиса: режим хранилища и размер списка.
type StatusResponse struct {
	StorageMode string `json:"storageMode"`
	Notes       int    `json:"notes"`
}

// NoteRequest - создание или правка заметки.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse - заметка с ее счетчиками.
type NoteResponse struct {
	Note  *entities.Note `json:"note"`
	Stats NoteStats      `json:"stats"`
}

// ListResponse - список заметок для боковой панели.
type ListResponse struct {
	Notes []NoteSummary `json:"notes"`
}

// TableRequest - вставка таблицы.
type TableRequest struct {
	Rows   int  `json:"rows"`
	Cols   int  `json:"cols"`
	Cursor *int `json:"cursor,omitempty"`
}

// PasteItemRequest - элемент вставки из буфера.
type PasteItemRequest struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

// ImageRequest - вставка изображения напрямую или перехват вставки.
type ImageRequest struct {
	Src    string             `json:"src"`
	Items  []PasteItemRequest `json:"items,omitempty"`
	Cursor *int               `json:"cursor,omitempty"`
}

// ResizeRequest - жест изменения размера изображения.
type ResizeRequest struct {
	Index          int    `json:"index"`
	Handle         string `json:"handle"`
	StartWidth     int    `json:"startWidth"`
	StartHeight    int    `json:"startHeight"`
	ContainerWidth int    `json:"containerWidth"`
	DeltaX         int    `json:"deltaX"`
}

// ResizeResponse - итог жеста изменения размера.
type ResizeResponse struct {
	Note    *entities.Note `json:"note"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Readout string         `json:"readout"`
}

// ImportResponse - итог пакетного импорта.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}
