package update_contact

import "context"

type ContactService interface {
	SetRead(ctx context.Context, id int64, isRead bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
