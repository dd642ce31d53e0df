package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
)

// Booking бронирование массажа. Владеет ровно одним забронированным слотом.
// Бронирования не удаляются физически — история сохраняется.
type Booking struct {
	ID        int64
	ServiceID int64
	SlotID    int64

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientComment string

	DurationMinutes int
	Status          BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled возвращает true, если бронирование отменено
func (b *Booking) IsCanceled() bool {
	return b.Status == StatusCanceled
}

// ValidStatuses допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCanceled,
}
