package cancel_slots_by_date

import (
	"errors"
	"net/http"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots_by_date"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CancelSlotsByDateUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotsByDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/cancel-by-date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelSlotsByDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/cancel-by-date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/cancel-by-date - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/cancel-by-date - Failed to cancel slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/cancel-by-date - Cancelled %d slot(s), %d appointment(s): date=%s",
		resp.CancelledSlots, resp.CancelledAppointments, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
