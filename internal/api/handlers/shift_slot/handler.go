package shift_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/shift_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgSlotCancelled      = "слот отменён"
	msgSlotConflict       = "целевое окно пересекается с другим слотом"
	msgTargetInPast       = "целевое время в прошлом"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ShiftSlotUseCase
	logger  Logger
}

func NewHandler(useCase ShiftSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/shift
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/shift - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req ShiftSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/shift - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(slotID)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/shift - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/shift - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uc.ErrSlotCancelled):
			h.logger.Warn("PATCH /slots/{id}/shift - Slot cancelled: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotCancelled)

		case errors.Is(err, uc.ErrSlotConflict):
			h.logger.Warn("PATCH /slots/{id}/shift - Conflict: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, uc.ErrTargetInPast):
			handlers.RespondBadRequest(w, msgTargetInPast)

		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/{id}/shift - Failed to shift slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/shift - Shifted: slot_id=%d to %s %s",
		slotID, resp.Date.Format(domain.DateFormat), resp.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
