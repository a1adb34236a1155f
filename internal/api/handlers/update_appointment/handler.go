package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/api/middleware"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/update_appointment"
)

const (
	msgUnauthorized           = "требуется аутентификация"
	msgInvalidAppointmentID   = "некорректный ID приёма"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgNotFound               = "приём не найден"
	msgForbidden              = "доступ запрещен"
	msgSlotNotFound           = "целевой слот не найден"
	msgSlotUnavailable        = "целевой слот недоступен"
	msgSlotConflict           = "целевой слот занят другим приёмом"
	msgSlotInPast             = "целевой слот в прошлом"
	msgInvalidStateTransition = "недопустимая смена состояния приёма"
	msgInvalidInput           = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, caller))
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uc.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, uc.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, uc.ErrSlotUnavailable):
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, uc.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, uc.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, uc.ErrInvalidStateTransition):
			handlers.RespondConflict(w, msgInvalidStateTransition)

		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Updated: appointment_id=%d, user_id=%d",
		appointmentID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
