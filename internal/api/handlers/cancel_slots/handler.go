package cancel_slots

import (
	"errors"
	"net/http"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CancelSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &uc.Request{SlotIDs: req.SlotIDs})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/cancel - Failed to cancel slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/cancel - Cancelled %d slot(s), %d appointment(s)",
		resp.CancelledSlots, resp.CancelledAppointments)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
