// Package create_booking движок бронирования: атомарно разбивает свободный
// слот на занятую часть и остатки, создавая бронирование.
package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	svcRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
)

// UseCase use case создания бронирования
type UseCase struct {
	slotRepo     SlotRepository
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	notifier     Notifier
	txManager    TransactionManager
	rules        Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotRepository,
	services ServiceRepository,
	bookings BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	rules Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slots,
		serviceRepo:  services,
		bookingRepo:  bookings,
		notifier:     notifier,
		txManager:    txManager,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование слота.
//
// Вся работа с календарем идет в одной транзакции с эксклюзивной блокировкой
// целевого слота: либо применяются все мутации разбиения (до двух свободных
// остатков, занятый слот, удаление исходного, запись бронирования), либо ни одна.
// Проигравший гонку запрос после коммита победителя не находит свободную строку
// и получает ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, service=%d, duration=%d, client=%s",
		req.SlotID, req.ServiceID, req.Duration, req.ClientEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result     *domain.Booking
		service    *domain.Service
		bookedSlot *domain.Slot
		window     domain.Interval
	)

	// 3. Выполняем разбиение слота в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Лочим целевой слот. Параллельные запросы на тот же слот
		// сериализуются на этой строке.
		slot, err := uc.slotRepo.FindFreeForUpdate(txCtx, req.SlotID)
		if err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateBooking: slot id=%d not available", req.SlotID)
				return ErrSlotNotAvailable
			case errors.Is(err, slotRepo.ErrSlotLocked):
				uc.logger.Warn("CreateBooking: slot id=%d is locked by another request", req.SlotID)
				return ErrSlotBusy
			default:
				uc.logger.Error("CreateBooking: failed to lock slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
			}
		}

		// 3.2. Получаем услугу
		service, err = uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, svcRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 3.3. Длительность должна входить в набор, предлагаемый услугой
		if !service.OffersDuration(req.Duration) {
			uc.logger.Warn("CreateBooking: duration %d not offered by service id=%d", req.Duration, req.ServiceID)
			return ErrDurationNotOffered
		}

		// 3.4. Длительность не может превышать сам слот
		if req.Duration > slot.DurationMinutes() {
			uc.logger.Warn("CreateBooking: duration %d exceeds slot id=%d (%d min)",
				req.Duration, slot.ID, slot.DurationMinutes())
			return ErrDurationExceedsSlot
		}

		// 3.5. Вычисляем границы сеанса и паузы
		bookingStart := slot.StartAt
		if req.StartAt != nil {
			bookingStart = *req.StartAt
		}
		bookingEnd := bookingStart.Add(time.Duration(req.Duration) * time.Minute)
		bufferEnd := bookingEnd.Add(time.Duration(uc.rules.BufferMinutes) * time.Minute)

		// 3.6. Минимальный lead time между запросом и началом сеанса
		minStart := now.Add(time.Duration(uc.rules.MinLeadMinutes) * time.Minute)
		if bookingStart.Before(minStart) {
			uc.logger.Warn("CreateBooking: start %s is too soon (min lead %d min)",
				bookingStart.Format(time.RFC3339), uc.rules.MinLeadMinutes)
			return ErrTooSoon
		}

		// 3.7. Сеанс должен помещаться в окно слота
		if bookingStart.Before(slot.StartAt) || bookingEnd.After(slot.EndAt) {
			uc.logger.Warn("CreateBooking: [%s, %s) does not fit slot id=%d window",
				bookingStart.Format(time.RFC3339), bookingEnd.Format(time.RFC3339), slot.ID)
			return ErrOutOfWindow
		}

		// 3.8. Разбиение. Исходный слот заменяется максимум тремя непересекающимися
		// детьми, свободный пул всегда отражает ровно оставшееся доступное время.

		// Свободный остаток до сеанса
		if bookingStart.After(slot.StartAt) {
			if _, err := uc.slotRepo.Insert(txCtx, &domain.Slot{
				StartAt: slot.StartAt,
				EndAt:   bookingStart,
			}); err != nil {
				uc.logger.Error("CreateBooking: failed to insert pre-gap slot: %v", err)
				return fmt.Errorf("%w: failed to insert pre-gap slot: %v", ErrInternal, err)
			}
		}

		// Свободный остаток после сеанса и паузы. Пауза вырезается как
		// мертвое время, отдельной сущности "пауза" нет.
		if bufferEnd.Before(slot.EndAt) {
			if _, err := uc.slotRepo.Insert(txCtx, &domain.Slot{
				StartAt: bufferEnd,
				EndAt:   slot.EndAt,
			}); err != nil {
				uc.logger.Error("CreateBooking: failed to insert post-gap slot: %v", err)
				return fmt.Errorf("%w: failed to insert post-gap slot: %v", ErrInternal, err)
			}
		}

		// Занятый слот ровно на длительность сеанса
		bookedSlot, err = uc.slotRepo.Insert(txCtx, &domain.Slot{
			StartAt:  bookingStart,
			EndAt:    bookingEnd,
			IsBooked: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to insert booked slot: %v", err)
			return fmt.Errorf("%w: failed to insert booked slot: %v", ErrInternal, err)
		}

		// Удаляем исходный слот
		if err := uc.slotRepo.Delete(txCtx, slot.ID); err != nil {
			uc.logger.Error("CreateBooking: failed to delete original slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to delete original slot: %v", ErrInternal, err)
		}

		// 3.9. Создаем бронирование со статусом pending
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ServiceID:       req.ServiceID,
			SlotID:          bookedSlot.ID,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			ClientComment:   req.ClientComment,
			DurationMinutes: req.Duration,
			Status:          domain.StatusPending,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		window = slot.Interval()
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (slot id=%d)", result.ID, bookedSlot.ID)

	// 4. Уведомления — вне транзакции, best-effort.
	// Сбой доставки логируется внутри notifier и не влияет на результат.
	uc.notifier.BookingRequested(ctx, result, service, bookedSlot, window)

	price, _ := service.PriceFor(req.Duration)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		SlotID:          result.SlotID,
		ServiceTitle:    service.Title,
		Price:           price,
		StartAt:         bookedSlot.StartAt,
		EndAt:           bookedSlot.EndAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		ClientComment:   result.ClientComment,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
