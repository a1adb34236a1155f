package convert_delivery_mode

import (
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/convert_delivery_mode"
)

// ConvertDeliveryModeRequest HTTP request model
type ConvertDeliveryModeRequest struct {
	DeliveryMode string `json:"deliveryMode"` // physical / telemedicine
}

// ConvertDeliveryModeResponse HTTP response model
type ConvertDeliveryModeResponse struct {
	SlotID             int64  `json:"slotId"`
	DeliveryMode       string `json:"deliveryMode"`
	AppointmentUpdated bool   `json:"appointmentUpdated"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *ConvertDeliveryModeResponse {
	return &ConvertDeliveryModeResponse{
		SlotID:             resp.SlotID,
		DeliveryMode:       resp.DeliveryMode,
		AppointmentUpdated: resp.AppointmentUpdated,
	}
}
