package domain

import "time"

// ContactMessage сообщение из формы обратной связи на сайте
type ContactMessage struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Message string
	IsRead  bool

	CreatedAt time.Time
}
