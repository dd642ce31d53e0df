package update_contact

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
	"github.com/m04kA/SAMASS-BookingService/internal/service/contact"
	"github.com/m04kA/SAMASS-BookingService/internal/service/contact/models"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidMessageID   = "identifiant de message invalide"
	msgNotFound           = "message introuvable"
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

// Handle PATCH /api/v1/contact/{messageId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	messageID, err := strconv.ParseInt(vars["messageId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /contact/{id} - Invalid message ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMessageID)
		return
	}

	var req models.UpdateMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /contact/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetRead(r.Context(), messageID, req.IsRead); err != nil {
		switch {
		case errors.Is(err, contact.ErrMessageNotFound):
			h.logger.Warn("PATCH /contact/{id} - Message not found: message_id=%d", messageID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /contact/{id} - Failed to update message: message_id=%d, error=%v", messageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /contact/{id} - Message updated: message_id=%d, is_read=%t", messageID, req.IsRead)
	w.WriteHeader(http.StatusNoContent)
}
