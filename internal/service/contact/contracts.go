package contact

import (
	"context"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// MessageRepository интерфейс репозитория сообщений обратной связи
type MessageRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	SetRead(ctx context.Context, id int64, isRead bool) error
	Delete(ctx context.Context, id int64) error
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	ContactReceived(ctx context.Context, m *domain.ContactMessage)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
