package cancel_slots

// Request модель запроса на отмену слотов по списку ID
type Request struct {
	SlotIDs []int64 // ID слотов для отмены
}

// Response модель ответа с результатами отмены
// Операция идемпотентна: уже отменённые слоты в счётчики не попадают
type Response struct {
	CancelledSlots        int   // Количество реально отменённых слотов
	CancelledAppointments int64 // Количество каскадно отменённых приёмов
}
