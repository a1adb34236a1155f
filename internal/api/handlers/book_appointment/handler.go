package book_appointment

import (
	"errors"
	"net/http"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/api/middleware"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/book_appointment"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgSlotInPast         = "слот в прошлом"
	msgDoctorNotFound     = "врач не найден"
	msgPatientNotFound    = "пользователь не зарегистрирован как пациент"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(caller.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: user_id=%d", caller.UserID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, uc.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: user_id=%d", caller.UserID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, uc.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, uc.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, uc.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: user_id=%d", caller.UserID)
			handlers.RespondForbidden(w, msgPatientNotFound)

		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: user_id=%d, error=%v",
				caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, name=%s, user_id=%d",
		resp.ID, resp.Name, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
