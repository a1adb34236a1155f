package shift_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("shift_slot: slot not found")

	// ErrSlotCancelled возвращается при попытке перенести отменённый слот
	ErrSlotCancelled = errors.New("shift_slot: slot is cancelled")

	// ErrSlotConflict возвращается, когда целевое окно пересекается с другим слотом
	ErrSlotConflict = errors.New("shift_slot: target window conflicts with another slot")

	// ErrTargetInPast возвращается, когда целевое время уже прошло
	ErrTargetInPast = errors.New("shift_slot: target datetime is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("shift_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("shift_slot: internal error")
)
