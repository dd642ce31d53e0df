// Package bookings сервис управления жизненным циклом бронирований:
// список для админки, подтверждение и отмена с освобождением слота.
package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SAMASS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	serviceRepo ServiceRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	serviceRepo ServiceRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе со слотом и услугой
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slot, svc := s.loadRelations(ctx, booking)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, slot, svc), nil
}

// List получает список бронирований, опционально фильтруя по статусу.
// Для каждого бронирования подтягиваются занятый слот и услуга.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v", req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Слоты забираем одним запросом, услуги — из каталога (их единицы)
	slotByID, err := s.loadSlots(ctx, bookings)
	if err != nil {
		return nil, err
	}
	serviceByID, err := s.loadServices(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.BookingListResponse{
		Bookings: make([]*models.BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, models.FromDomainBooking(b, slotByID[b.SlotID], serviceByID[b.ServiceID]))
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return resp, nil
}

// Confirm подтверждает бронирование и отправляет клиенту письмо с адресом.
// Статус можно выставить из любого текущего: повторное подтверждение
// или подтверждение после отмены — осознанное решение администратора.
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: failed to update status for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - failed to update status: %v", ErrInternal, err)
	}
	booking.Status = domain.StatusConfirmed

	slot, svc := s.loadRelations(ctx, booking)
	if slot != nil && svc != nil {
		s.notifier.BookingConfirmed(ctx, booking, svc, slot)
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return models.FromDomainBooking(booking, slot, svc), nil
}

// Cancel отменяет бронирование и освобождает его слот.
// Слот возвращается в пул как есть, без склейки с соседними свободными
// слотами: повторное бронирование того же окна остается возможным сразу.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	alreadyCanceled := booking.IsCanceled()

	// Смена статуса и освобождение слота - одна атомарная операция
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusCanceled); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if err := s.slotRepo.SetBooked(txCtx, booking.SlotID, false); err != nil {
			// Слот мог быть удален вручную из календаря, отмена все равно проходит
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Cancel: slot id=%d for booking id=%d no longer exists", booking.SlotID, id)
				return nil
			}
			return fmt.Errorf("failed to release slot: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: transaction failed for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - transaction failed: %v", ErrInternal, err)
	}
	booking.Status = domain.StatusCanceled

	slot, svc := s.loadRelations(ctx, booking)
	// Повторная отмена слот уже освободила, письмо клиенту не дублируем
	if !alreadyCanceled && slot != nil && svc != nil {
		s.notifier.BookingCancelled(ctx, booking, svc, slot)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, slot id=%d released", id, booking.SlotID)
	return models.FromDomainBooking(booking, slot, svc), nil
}

// Вспомогательные методы

// loadRelations подтягивает слот и услугу бронирования.
// Отсутствие связанных записей не считается ошибкой.
func (s *Service) loadRelations(ctx context.Context, b *domain.Booking) (*domain.Slot, *domain.Service) {
	slot, err := s.slotRepo.GetByID(ctx, b.SlotID)
	if err != nil {
		s.logger.Warn("loadRelations: failed to get slot id=%d for booking id=%d: %v", b.SlotID, b.ID, err)
		slot = nil
	}

	svc, err := s.serviceRepo.GetByID(ctx, b.ServiceID)
	if err != nil {
		s.logger.Warn("loadRelations: failed to get service id=%d for booking id=%d: %v", b.ServiceID, b.ID, err)
		svc = nil
	}

	return slot, svc
}

// loadSlots забирает слоты всех бронирований одним запросом
func (s *Service) loadSlots(ctx context.Context, bookings []*domain.Booking) (map[int64]*domain.Slot, error) {
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.SlotID)
	}

	byID := make(map[int64]*domain.Slot, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	slots, err := s.slotRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("loadSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: loadSlots - repository error: %v", ErrInternal, err)
	}
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	return byID, nil
}

// loadServices строит индекс каталога услуг по ID
func (s *Service) loadServices(ctx context.Context) (map[int64]*domain.Service, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("loadServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: loadServices - repository error: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	return byID, nil
}
