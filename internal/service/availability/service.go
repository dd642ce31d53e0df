// Package availability сервис управления календарем свободных слотов:
// публичный список доступного времени и ручное редактирование календаря.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SAMASS-BookingService/internal/service/availability/models"
	"github.com/m04kA/SAMASS-BookingService/pkg/ptr"
)

// Service сервис календаря доступности
type Service struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря.
// Дневной фильтр интерпретируется в часовом поясе салона (Europe/Paris).
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		logger.Warn("Availability: failed to load Europe/Paris location, using UTC: %v", err)
		loc = time.UTC
	}

	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// List возвращает слоты календаря. Без фильтра date отдается полный календарь
// (включая занятые и истекшие слоты) - это картина для админки. С фильтром date
// возвращаются только свободные и не истекшие слоты этого дня.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots, date=%v", req.Date)

	if req.Date == nil || *req.Date == "" {
		slots, err := s.slotRepo.List(ctx)
		if err != nil {
			s.logger.Error("List: repository error: %v", err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("List: successfully fetched %d slots", len(slots))
		return models.FromDomainSlotList(slots), nil
	}

	// Календарный день считается в поясе салона, а не в UTC
	parsed, err := time.ParseInLocation(domain.DateFormat, *req.Date, s.loc)
	if err != nil {
		s.logger.Warn("List: invalid date filter %q", *req.Date)
		return nil, ErrInvalidDate
	}

	slots, err := s.slotRepo.QueryFree(ctx, s.timeProvider.Now(), ptr.Ptr(parsed))
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d free slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// Create добавляет окно доступности в календарь.
// Пересекающиеся свободные слоты удаляются, новое окно становится
// единственным источником правды для этого отрезка времени.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: adding availability window [%s, %s)",
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	interval := domain.Interval{Start: req.StartAt, End: req.EndAt}
	if !interval.IsValid() {
		s.logger.Warn("Create: invalid interval [%s, %s)",
			req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))
		return nil, ErrInvalidInterval
	}

	var created *domain.Slot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.InsertFree(txCtx, interval)
		if err != nil {
			return err
		}
		created = slot
		return nil
	})
	if err != nil {
		s.logger.Error("Create: failed to insert free slot: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to insert free slot: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Update изменяет окно слота целиком
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", id)

	interval := domain.Interval{Start: req.StartAt, End: req.EndAt}
	if !interval.IsValid() {
		s.logger.Warn("Update: invalid interval for slot id=%d", id)
		return nil, ErrInvalidInterval
	}

	slot := &domain.Slot{
		ID:       id,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		IsBooked: req.IsBooked,
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload slot: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", id)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот из календаря
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", id)
	return nil
}
