package notifications

import (
	"context"

	"github.com/m04kA/SAMASS-BookingService/internal/integrations/mailer"
)

// MailClient интерфейс почтового клиента
type MailClient interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Settings отображаемые данные для писем. Инжектируются при создании сервиса,
// на логику бронирования не влияют.
type Settings struct {
	AdminEmail     string
	FromEmail      string
	AdminPortalURL string
	ContactURL     string
	Location       string
	Parking        string
	DoorCode       string
	Floor          string
}
