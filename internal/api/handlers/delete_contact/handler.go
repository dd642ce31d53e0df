package delete_contact

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
	"github.com/m04kA/SAMASS-BookingService/internal/service/contact"
)

const (
	msgInvalidMessageID = "identifiant de message invalide"
	msgNotFound         = "message introuvable"
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

// Handle DELETE /api/v1/contact/{messageId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	messageID, err := strconv.ParseInt(vars["messageId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /contact/{id} - Invalid message ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMessageID)
		return
	}

	if err := h.service.Delete(r.Context(), messageID); err != nil {
		switch {
		case errors.Is(err, contact.ErrMessageNotFound):
			h.logger.Warn("DELETE /contact/{id} - Message not found: message_id=%d", messageID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /contact/{id} - Failed to delete message: message_id=%d, error=%v", messageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /contact/{id} - Message deleted: message_id=%d", messageID)
	w.WriteHeader(http.StatusNoContent)
}
