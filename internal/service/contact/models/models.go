package models

import (
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// Request модели

// SubmitMessageRequest запрос формы обратной связи
type SubmitMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// UpdateMessageRequest запрос на смену признака прочитанности
type UpdateMessageRequest struct {
	IsRead bool `json:"isRead"`
}

// Response модели

// MessageResponse ответ с данными сообщения
type MessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageListResponse ответ со списком сообщений
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int                `json:"total"`
}

// FromDomainMessage конвертирует domain.ContactMessage в MessageResponse
func FromDomainMessage(m *domain.ContactMessage) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomainMessageList конвертирует список domain.ContactMessage в MessageListResponse
func FromDomainMessageList(messages []*domain.ContactMessage) *MessageListResponse {
	resp := &MessageListResponse{
		Messages: make([]*MessageResponse, 0, len(messages)),
		Total:    len(messages),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, FromDomainMessage(m))
	}
	return resp
}
