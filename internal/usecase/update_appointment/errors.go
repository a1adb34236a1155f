package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не назначенный врач
	ErrAccessDenied = errors.New("update_appointment: access denied")

	// ErrSlotNotFound возвращается, когда целевой слот не найден
	ErrSlotNotFound = errors.New("update_appointment: slot not found")

	// ErrSlotUnavailable возвращается, когда целевой слот отменён
	ErrSlotUnavailable = errors.New("update_appointment: slot is not available")

	// ErrSlotConflict возвращается, когда целевой слот занят другим приёмом
	ErrSlotConflict = errors.New("update_appointment: slot is taken by another appointment")

	// ErrSlotInPast возвращается при попытке перенести приём на прошедший слот
	ErrSlotInPast = errors.New("update_appointment: slot is in the past")

	// ErrInvalidStateTransition возвращается при недопустимой смене состояния
	ErrInvalidStateTransition = errors.New("update_appointment: invalid state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
