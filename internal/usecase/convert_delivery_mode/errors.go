package convert_delivery_mode

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("convert_delivery_mode: slot not found")

	// ErrSlotCancelled возвращается при попытке конвертировать отменённый слот
	ErrSlotCancelled = errors.New("convert_delivery_mode: slot is cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("convert_delivery_mode: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_delivery_mode: internal error")
)
