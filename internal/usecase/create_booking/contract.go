package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindFreeForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	Insert(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// Notifier интерфейс сервиса уведомлений.
// Вызывается после коммита транзакции; сбои доставки не влияют на результат.
type Notifier interface {
	BookingRequested(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot, window domain.Interval)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
