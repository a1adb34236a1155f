package book_appointment

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на бронирование приёма
// Основной путь указывает SlotID; legacy-путь вместо него передаёт
// DoctorID + Date + StartTime, и слот подбирается или синтезируется
type Request struct {
	UserID int64 // ID пользователя, от имени которого создаётся запись

	SlotID *int64 // ID слота (основной путь)

	DoctorID  *int64            // ID врача (legacy-путь)
	Date      *time.Time        // Дата приёма (legacy-путь)
	StartTime *types.TimeString // Время начала (legacy-путь)

	Urgency     *string // Срочность: a / b / c (по умолчанию "a")
	VisitType   *string // Тип визита (по умолчанию "general")
	SpecialtyID *int64  // Специальность (по умолчанию первая у врача)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID            int64  // ID приёма
	Name          string // Уникальный референс приёма
	SlotID        int64  // ID занятого слота
	PatientID     int64  // ID пациента
	DoctorID      int64  // ID врача
	InstitutionID int64  // ID учреждения
	SpecialtyID   int64  // ID специальности
	Urgency       string // Срочность
	VisitType     string // Тип визита
	DeliveryMode  string // Тип приёма: physical / telemedicine
	State         string // Состояние приёма

	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время конца слота

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
