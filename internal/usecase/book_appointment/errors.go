package book_appointment

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_appointment: slot not found")

	// ErrSlotUnavailable возвращается, когда слот уже занят или отменён
	ErrSlotUnavailable = errors.New("book_appointment: slot is not available")

	// ErrSlotInPast возвращается при попытке забронировать прошедший слот
	ErrSlotInPast = errors.New("book_appointment: slot is in the past")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("book_appointment: doctor not found")

	// ErrPatientNotFound возвращается, когда пользователь не зарегистрирован как пациент
	ErrPatientNotFound = errors.New("book_appointment: user is not registered as a patient")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
