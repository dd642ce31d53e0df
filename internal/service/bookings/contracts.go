package bookings

import (
	"context"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

// Notifier интерфейс сервиса уведомлений.
// Сбои доставки логируются внутри notifier и не пробрасываются.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot)
	BookingCancelled(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
