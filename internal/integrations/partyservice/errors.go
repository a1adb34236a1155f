package partyservice

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrPatientNotFound возвращается, когда пользователь не зарегистрирован как пациент
	ErrPatientNotFound = errors.New("user is not registered as a patient")

	// ErrSpecialtyNotFound возвращается, когда специальность не найдена
	ErrSpecialtyNotFound = errors.New("specialty not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("partyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("partyservice client: invalid response")
)
