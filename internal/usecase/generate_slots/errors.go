package generate_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("generate_slots: doctor not found")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("generate_slots: invalid date range")

	// ErrDateInPast возвращается, когда начало диапазона в прошлом
	ErrDateInPast = errors.New("generate_slots: start date is in the past")

	// ErrRangeTooLarge возвращается, когда диапазон превышает максимальный размер пакета
	ErrRangeTooLarge = errors.New("generate_slots: date range is too large")

	// ErrInvalidTimeWindow возвращается при некорректном дневном окне времени
	ErrInvalidTimeWindow = errors.New("generate_slots: invalid time window")

	// ErrInvalidDuration возвращается при недопустимой длительности слота
	ErrInvalidDuration = errors.New("generate_slots: invalid slot duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
