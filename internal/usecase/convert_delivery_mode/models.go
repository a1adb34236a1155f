package convert_delivery_mode

// Request модель запроса на смену типа приёма слота
type Request struct {
	SlotID int64  // ID слота
	Mode   string // Целевой тип: physical / telemedicine
}

// Response модель ответа с результатом конвертации
type Response struct {
	SlotID             int64  // ID слота
	DeliveryMode       string // Новый тип приёма
	AppointmentUpdated bool   // Был ли каскадно обновлён привязанный приём
}
