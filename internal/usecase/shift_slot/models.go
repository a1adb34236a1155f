package shift_slot

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на перенос слота
type Request struct {
	SlotID       int64            // ID слота
	NewDate      time.Time        // Новая дата
	NewStartTime types.TimeString // Новое время начала
}

// Response модель ответа с перенесённым слотом
// ID и состояние слота сохраняются, привязанный приём следует за слотом
type Response struct {
	ID              int64            // ID слота
	DoctorID        int64            // ID врача
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время конца
	DurationMinutes int              // Длительность (не меняется)
	DeliveryMode    string           // Тип приёма
	State           string           // Состояние (не меняется)
}
