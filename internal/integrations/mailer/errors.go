package mailer

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда письмо не удалось отправить.
	// Вызывающий код логирует ошибку и продолжает работу: успех бронирования
	// никогда не зависит от доставки письма.
	ErrDeliveryFailed = errors.New("mailer: delivery failed")

	// ErrInvalidResponse возвращается при некорректном ответе Resend API
	ErrInvalidResponse = errors.New("mailer: invalid provider response")

	// ErrNoRecipients возвращается при отправке без получателей
	ErrNoRecipients = errors.New("mailer: no recipients")
)
