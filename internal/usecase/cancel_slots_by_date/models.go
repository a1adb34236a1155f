package cancel_slots_by_date

import "time"

// Request модель запроса на отмену слотов на дату
type Request struct {
	Date     time.Time // Дата, слоты которой отменяются
	DoctorID *int64    // Ограничить отмену слотами одного врача (опционально)
}

// Response модель ответа с результатами отмены
type Response struct {
	CancelledSlots        int   // Количество реально отменённых слотов
	CancelledAppointments int64 // Количество каскадно отменённых приёмов
}
