package get_specialty_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/slots"
)

const (
	msgInvalidSpecialtyID = "некорректный ID специальности"
	msgSpecialtyNotFound  = "специальность не найдена"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialties/{specialtyId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialtyID, err := strconv.ParseInt(vars["specialtyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialties/{id}/slots - Invalid specialty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialtyID)
		return
	}

	resp, err := h.service.SearchBySpecialty(r.Context(), specialtyID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSpecialtyNotFound):
			h.logger.Warn("GET /specialties/{id}/slots - Specialty not found: specialty_id=%d", specialtyID)
			handlers.RespondNotFound(w, msgSpecialtyNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSpecialtyID)

		default:
			h.logger.Error("GET /specialties/{id}/slots - Failed to search slots: specialty_id=%d, error=%v",
				specialtyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialties/{id}/slots - Found %d free slot(s): specialty_id=%d",
		len(resp.Slots), specialtyID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
