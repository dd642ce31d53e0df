package list_contacts

import (
	"context"

	"github.com/m04kA/SAMASS-BookingService/internal/service/contact/models"
)

type ContactService interface {
	List(ctx context.Context) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
