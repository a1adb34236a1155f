package get_patient_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/api/middleware"
	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/appointments"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgPatientNotFound = "пользователь не зарегистрирован как пациент"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/me/appointments?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /patients/me/appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	resp, err := h.service.ListPatientAppointments(r.Context(), caller, date)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrPatientNotFound):
			h.logger.Warn("GET /patients/me/appointments - Patient not found: user_id=%d", caller.UserID)
			handlers.RespondForbidden(w, msgPatientNotFound)

		default:
			h.logger.Error("GET /patients/me/appointments - Failed to list appointments: user_id=%d, error=%v",
				caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/me/appointments - Found %d appointment(s): user_id=%d",
		len(resp.Appointments), caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
