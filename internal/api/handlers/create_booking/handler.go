package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SAMASS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "corps de requête invalide"
	msgInvalidStartAt      = "format de date de début invalide, RFC 3339 attendu"
	msgSlotNotAvailable    = "ce créneau n'est plus disponible"
	msgSlotBusy            = "ce créneau est en cours de réservation, veuillez réessayer"
	msgServiceNotFound     = "service introuvable"
	msgDurationNotOffered  = "cette durée n'est pas proposée pour ce service"
	msgDurationExceedsSlot = "la durée dépasse le créneau choisi"
	msgTooSoon             = "la réservation doit être faite au moins 2h à l'avance"
	msgOutOfWindow         = "la séance ne tient pas dans le créneau choisi"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotBusy):
			h.logger.Warn("POST /bookings - Slot busy: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBusy)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrDurationNotOffered):
			h.logger.Warn("POST /bookings - Duration not offered: service_id=%d, duration=%d", req.ServiceID, req.Duration)
			handlers.RespondBadRequest(w, msgDurationNotOffered)

		case errors.Is(err, createBooking.ErrDurationExceedsSlot):
			h.logger.Warn("POST /bookings - Duration exceeds slot: slot_id=%d, duration=%d", req.SlotID, req.Duration)
			handlers.RespondBadRequest(w, msgDurationExceedsSlot)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings - Booking too soon: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgTooSoon)

		case errors.Is(err, createBooking.ErrOutOfWindow):
			h.logger.Warn("POST /bookings - Booking out of slot window: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot_id=%d", result.ID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
