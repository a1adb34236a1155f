package delete_appointment

import "github.com/polyakovn/HMS-SchedulingService/internal/domain"

// Request модель запроса на удаление приёма
type Request struct {
	AppointmentID int64         // ID приёма
	Caller        domain.Caller // Пользователь, выполняющий операцию
}

// Response модель ответа об удалении
type Response struct {
	ID           int64 // ID отменённого приёма
	SlotReleased bool  // Был ли слот возвращён в free
}
