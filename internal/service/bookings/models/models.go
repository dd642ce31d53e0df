package models

import (
	"errors"
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования.
// Время сеанса берется из занятого слота, название и цена — из услуги.
type BookingResponse struct {
	ID              int64     `json:"id"`
	ServiceID       int64     `json:"serviceId"`
	SlotID          int64     `json:"slotId"`
	ServiceTitle    string    `json:"serviceTitle"`
	Price           float64   `json:"price"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientComment string `json:"clientComment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse.
// slot и svc могут быть nil, если связанные записи были удалены вручную.
func FromDomainBooking(b *domain.Booking, slot *domain.Slot, svc *domain.Service) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		SlotID:          b.SlotID,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		ClientComment:   b.ClientComment,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if slot != nil {
		resp.StartAt = slot.StartAt
		resp.EndAt = slot.EndAt
	}

	if svc != nil {
		resp.ServiceTitle = svc.Title
		if price, ok := svc.PriceFor(b.DurationMinutes); ok {
			resp.Price = price
		}
	}

	return resp
}
