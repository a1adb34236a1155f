package generate_slots

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	DoctorID        int64            // ID врача
	StartDate       time.Time        // Первая дата диапазона (включительно)
	EndDate         time.Time        // Последняя дата диапазона (включительно)
	StartTime       types.TimeString // Начало дневного окна (например, "10:00")
	EndTime         types.TimeString // Конец дневного окна (например, "13:00")
	DurationMinutes int              // Длительность одного слота в минутах
	DeliveryMode    string           // Тип приёма: physical / telemedicine
}

// Response модель ответа с результатами генерации
type Response struct {
	Created int           // Количество созданных слотов
	Skipped int           // Количество пропущенных из-за пересечений
	Slots   []GeneratedSlot // Созданные слоты
}

// GeneratedSlot краткое описание созданного слота
type GeneratedSlot struct {
	ID        int64            // ID слота
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время конца
}
