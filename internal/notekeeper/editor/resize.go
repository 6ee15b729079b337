package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// MinImageWidth - нижняя граница ширины изображения при изменении размера.
const MinImageWidth = 100

// Ошибки конечного автомата изменения размера.
var (
	ErrResizeActive   = errors.New("resize already in progress")
	ErrResizeInactive = errors.New("no resize in progress")
	ErrUnknownHandle  = errors.New("unknown resize handle")
)

// Ручки восточной стороны: движение вправо увеличивает ширину.
// У западных ручек знак дельты обратный.
var eastHandles = map[string]bool{
	"ne": true,
	"se": true,
	"nw": false,
	"sw": false,
}

// ResizeSession - конечный автомат изменения размера изображения:
// покой, затем активное перетаскивание одной из угловых ручек, затем
// снова покой с зафиксированной шириной.
type ResizeSession struct {
	active bool

	handle         string
	startWidth     int
	startHeight    int
	containerWidth int
	aspect         float64

	width  int
	height int
}

// Active сообщает, идет ли перетаскивание.
func (s *ResizeSession) Active() bool {
	return s.active
}

// Begin начинает перетаскивание указанной ручки. Начальные размеры и
// ширина контейнера фиксируются на все время жизни жеста.
func (s *ResizeSession) Begin(handle string, startWidth, startHeight, containerWidth int) error {
	if s.active {
		return ErrResizeActive
	}
	if _, ok := eastHandles[handle]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHandle, handle)
	}
	if startWidth <= 0 || startHeight <= 0 || containerWidth <= 0 {
		return fmt.Errorf("invalid resize geometry: %dx%d in %d", startWidth, startHeight, containerWidth)
	}

	s.active = true
	s.handle = handle
	s.startWidth = startWidth
	s.startHeight = startHeight
	s.containerWidth = containerWidth
	s.aspect = float64(startHeight) / float64(startWidth)
	s.width = startWidth
	s.height = startHeight
	return nil
}

// Move применяет горизонтальное смещение указателя. Ширина ограничивается
// диапазоном [MinImageWidth, containerWidth], высота следует пропорции.
// Возвращает текущие размеры и строку индикатора.
func (s *ResizeSession) Move(deltaX int) (width, height int, readout string, err error) {
	if !s.active {
		return 0, 0, "", ErrResizeInactive
	}

	w := s.startWidth
	if eastHandles[s.handle] {
		w += deltaX
	} else {
		w -= deltaX
	}

	if w < MinImageWidth {
		w = MinImageWidth
	}
	if w > s.containerWidth {
		w = s.containerWidth
	}

	s.width = w
	s.height = int(float64(w) * s.aspect)
	return s.width, s.height, fmt.Sprintf("%d x %d", s.width, s.height), nil
}

// End завершает перетаскивание и возвращает итоговую ширину.
func (s *ResizeSession) End() (int, error) {
	if !s.active {
		return 0, ErrResizeInactive
	}
	s.active = false
	return s.width, nil
}

var wrapperRe = regexp.MustCompile(`<div class="image-wrapper" style="width: (\d+)px;">`)

// SetImageWidth записывает итоговую ширину в стиль контейнера изображения
// с порядковым номером index (с нуля). Разметка без такого контейнера
// возвращается без изменений.
func SetImageWidth(content string, index, width int) string {
	n := -1
	return wrapperRe.ReplaceAllStringFunc(content, func(match string) string {
		n++
		if n != index {
			return match
		}
		return `<div class="image-wrapper" style="width: ` + strconv.Itoa(width) + `px;">`
	})
}

// CountImages возвращает число контейнеров изображений в разметке.
func CountImages(content string) int {
	return len(wrapperRe.FindAllString(content, -1))
}
