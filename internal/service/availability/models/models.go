package models

import (
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// Request модели

// ListSlotsRequest запрос на получение свободных слотов
type ListSlotsRequest struct {
	Date *string `json:"date,omitempty"` // Фильтр по дню в формате YYYY-MM-DD (опционально)
}

// CreateSlotRequest запрос на добавление окна доступности
type CreateSlotRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// UpdateSlotRequest запрос на изменение окна слота
type UpdateSlotRequest struct {
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
	IsBooked bool      `json:"isBooked"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID              int64     `json:"id"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	IsBooked        bool      `json:"isBooked"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []*SlotResponse `json:"slots"`
	Total int             `json:"total"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
		IsBooked:        s.IsBooked,
		DurationMinutes: s.DurationMinutes(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain.Slot в SlotListResponse
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]*SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(s))
	}
	return resp
}
