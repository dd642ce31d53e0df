package list_contacts

import (
	"net/http"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
)

type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /contact - Failed to list messages: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /contact - Retrieved %d messages", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
