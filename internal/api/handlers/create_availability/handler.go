package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
	"github.com/m04kA/SAMASS-BookingService/internal/service/availability"
	"github.com/m04kA/SAMASS-BookingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidInterval    = "le créneau doit avoir une fin postérieure au début"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availabilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInterval):
			h.logger.Warn("POST /availabilities - Invalid interval")
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /availabilities - Failed to create slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availabilities - Slot created: slot_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
