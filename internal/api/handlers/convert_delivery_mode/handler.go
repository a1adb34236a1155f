package convert_delivery_mode

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/convert_delivery_mode"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgSlotCancelled      = "слот отменён"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ConvertDeliveryModeUseCase
	logger  Logger
}

func NewHandler(useCase ConvertDeliveryModeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/delivery-mode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/delivery-mode - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req ConvertDeliveryModeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/delivery-mode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &uc.Request{
		SlotID: slotID,
		Mode:   req.DeliveryMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/delivery-mode - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uc.ErrSlotCancelled):
			h.logger.Warn("PATCH /slots/{id}/delivery-mode - Slot cancelled: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotCancelled)

		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/{id}/delivery-mode - Failed to convert: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/delivery-mode - Converted: slot_id=%d to %s, appointment_updated=%t",
		slotID, resp.DeliveryMode, resp.AppointmentUpdated)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
