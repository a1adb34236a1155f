package delete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден или уже отменён
	ErrAppointmentNotFound = errors.New("delete_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец записи
	ErrAccessDenied = errors.New("delete_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_appointment: internal error")
)
