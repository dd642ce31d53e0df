// Package contact сервис формы обратной связи: прием сообщений с сайта
// и их разбор в админке.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	contactRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/contact"
	"github.com/m04kA/SAMASS-BookingService/internal/service/contact/models"
)

// Service сервис сообщений обратной связи
type Service struct {
	messageRepo MessageRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса обратной связи
func NewService(messageRepo MessageRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Submit сохраняет сообщение и уведомляет администратора и отправителя.
// Сбой почты не откатывает сохранение.
func (s *Service) Submit(ctx context.Context, req *models.SubmitMessageRequest) (*models.MessageResponse, error) {
	s.logger.Info("Submit: new contact message from %s", req.Email)

	if err := validateMessage(req); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	created, err := s.messageRepo.Create(ctx, &domain.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.notifier.ContactReceived(ctx, created)

	s.logger.Info("Submit: successfully saved message id=%d", created.ID)
	return models.FromDomainMessage(created), nil
}

// List возвращает все сообщения, новые первыми
func (s *Service) List(ctx context.Context) (*models.MessageListResponse, error) {
	s.logger.Info("List: fetching contact messages")

	messages, err := s.messageRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d messages", len(messages))
	return models.FromDomainMessageList(messages), nil
}

// SetRead помечает сообщение прочитанным или непрочитанным
func (s *Service) SetRead(ctx context.Context, id int64, isRead bool) error {
	s.logger.Info("SetRead: marking message id=%d isRead=%t", id, isRead)

	if err := s.messageRepo.SetRead(ctx, id, isRead); err != nil {
		if errors.Is(err, contactRepo.ErrMessageNotFound) {
			s.logger.Warn("SetRead: message id=%d not found", id)
			return ErrMessageNotFound
		}
		s.logger.Error("SetRead: repository error for message id=%d: %v", id, err)
		return fmt.Errorf("%w: SetRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет сообщение
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting message id=%d", id)

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, contactRepo.ErrMessageNotFound) {
			s.logger.Warn("Delete: message id=%d not found", id)
			return ErrMessageNotFound
		}
		s.logger.Error("Delete: repository error for message id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// validateMessage проверяет поля формы обратной связи
func validateMessage(req *models.SubmitMessageRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	if len(req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	return nil
}
