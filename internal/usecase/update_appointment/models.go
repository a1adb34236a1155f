package update_appointment

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// Request модель запроса на изменение приёма
// Поля со значением nil не затрагиваются
type Request struct {
	AppointmentID int64         // ID приёма
	Caller        domain.Caller // Пользователь, выполняющий операцию

	NewSlotID *int64  // Перенос приёма на другой слот
	State     *string // Смена состояния (только вперёд по жизненному циклу)
	Urgency   *string // Срочность: a / b / c
	VisitType *string // Тип визита
}

// Response модель ответа с обновлённым приёмом
type Response struct {
	ID            int64  // ID приёма
	Name          string // Референс приёма
	SlotID        int64  // ID слота
	PatientID     int64  // ID пациента
	DoctorID      int64  // ID врача
	InstitutionID int64  // ID учреждения
	SpecialtyID   int64  // ID специальности
	Urgency       string // Срочность
	VisitType     string // Тип визита
	DeliveryMode  string // Тип приёма
	State         string // Состояние приёма

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
