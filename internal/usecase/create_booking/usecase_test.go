package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	svcRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/service"
)

// Моки

type mockSlotRepo struct {
	slot     *domain.Slot
	findErr  error
	nextID   int64
	inserted []*domain.Slot
	deleted  []int64
}

func (m *mockSlotRepo) FindFreeForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.slot == nil || m.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *m.slot
	return &copied, nil
}

func (m *mockSlotRepo) Insert(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	m.nextID++
	copied := *s
	copied.ID = m.nextID + 100
	m.inserted = append(m.inserted, &copied)
	return &copied, nil
}

func (m *mockSlotRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockServiceRepo struct {
	service *domain.Service
	err     error
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.service, nil
}

type mockBookingRepo struct {
	created *domain.Booking
	err     error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	copied := *b
	copied.ID = 42
	copied.CreatedAt = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	copied.UpdatedAt = copied.CreatedAt
	m.created = &copied
	return &copied, nil
}

type mockNotifier struct {
	requested int
	booking   *domain.Booking
	window    domain.Interval
}

func (m *mockNotifier) BookingRequested(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot, window domain.Interval) {
	m.requested++
	m.booking = b
	m.window = window
}

type mockTxManager struct {
	rolledBack bool
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func freeSlot(startHour, endHour int) *domain.Slot {
	return &domain.Slot{
		ID:      1,
		StartAt: at(startHour, 0),
		EndAt:   at(endHour, 0),
	}
}

func massageService() *domain.Service {
	return &domain.Service{
		ID:    1,
		Title: "Massage Relaxant Tonique",
		DurationsPrices: map[string]float64{
			"60": 80,
			"90": 120,
		},
		IsActive: true,
	}
}

type fixture struct {
	uc       *UseCase
	slots    *mockSlotRepo
	services *mockServiceRepo
	bookings *mockBookingRepo
	notifier *mockNotifier
	tx       *mockTxManager
}

func newFixture(slot *domain.Slot) *fixture {
	f := &fixture{
		slots:    &mockSlotRepo{slot: slot},
		services: &mockServiceRepo{service: massageService()},
		bookings: &mockBookingRepo{},
		notifier: &mockNotifier{},
		tx:       &mockTxManager{},
	}
	f.uc = NewUseCase(f.slots, f.services, f.bookings, f.notifier, f.tx,
		Rules{BufferMinutes: 60, MinLeadMinutes: 120}, nopLogger{})
	f.uc.timeProvider = &fakeClock{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		SlotID:      1,
		ServiceID:   1,
		Duration:    60,
		ClientName:  "Claire Dupont",
		ClientEmail: "claire@example.com",
	}
}

// Тесты

func TestExecute_BookingAtSlotStart(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, at(12, 0), resp.StartAt)
	assert.Equal(t, at(13, 0), resp.EndAt)
	assert.Equal(t, 80.0, resp.Price)
	assert.Equal(t, "Massage Relaxant Tonique", resp.ServiceTitle)

	// Сеанс в начале слота: детей двое, занятый [12:00, 13:00)
	// и свободный остаток после паузы [14:00, 18:00)
	require.Len(t, f.slots.inserted, 2)

	post := f.slots.inserted[0]
	assert.False(t, post.IsBooked)
	assert.Equal(t, at(14, 0), post.StartAt)
	assert.Equal(t, at(18, 0), post.EndAt)

	booked := f.slots.inserted[1]
	assert.True(t, booked.IsBooked)
	assert.Equal(t, at(12, 0), booked.StartAt)
	assert.Equal(t, at(13, 0), booked.EndAt)

	// Исходный слот удален
	assert.Equal(t, []int64{1}, f.slots.deleted)

	// Уведомление ушло один раз, с окном исходного слота
	assert.Equal(t, 1, f.notifier.requested)
	assert.Equal(t, domain.Interval{Start: at(12, 0), End: at(18, 0)}, f.notifier.window)
}

func TestExecute_BookingMidSlot(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	req := validRequest()
	start := at(14, 0)
	req.StartAt = &start
	req.Duration = 90

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, at(14, 0), resp.StartAt)
	assert.Equal(t, at(15, 30), resp.EndAt)
	assert.Equal(t, 120.0, resp.Price)

	// Сеанс в середине: свободный до [12:00, 14:00),
	// свободный после паузы [16:30, 18:00), занятый [14:00, 15:30)
	require.Len(t, f.slots.inserted, 3)

	pre := f.slots.inserted[0]
	assert.False(t, pre.IsBooked)
	assert.Equal(t, at(12, 0), pre.StartAt)
	assert.Equal(t, at(14, 0), pre.EndAt)

	post := f.slots.inserted[1]
	assert.False(t, post.IsBooked)
	assert.Equal(t, at(16, 30), post.StartAt)
	assert.Equal(t, at(18, 0), post.EndAt)

	booked := f.slots.inserted[2]
	assert.True(t, booked.IsBooked)
	assert.Equal(t, at(14, 0), booked.StartAt)
	assert.Equal(t, at(15, 30), booked.EndAt)
}

func TestExecute_ExactFitLeavesNoChildren(t *testing.T) {
	f := newFixture(freeSlot(12, 13))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, at(12, 0), resp.StartAt)

	// Пауза уходит за конец слота, свободных остатков нет
	require.Len(t, f.slots.inserted, 1)
	assert.True(t, f.slots.inserted[0].IsBooked)
	assert.Equal(t, []int64{1}, f.slots.deleted)
}

func TestExecute_RebookSlotReleasedByCancel(t *testing.T) {
	// Слот, освобожденный отменой: is_booked снят, но отмененное бронирование
	// продолжает ссылаться на него. Разбиение удаляет исходную строку, поэтому
	// схема не должна блокировать удаление слота с историей бронирований
	released := freeSlot(14, 15)
	released.ID = 100
	f := newFixture(released)

	req := validRequest()
	req.SlotID = 100

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, at(14, 0), resp.StartAt)
	assert.Equal(t, []int64{100}, f.slots.deleted)
	assert.False(t, f.tx.rolledBack)
	assert.Equal(t, 1, f.notifier.requested)
}

func TestExecute_TooSoon(t *testing.T) {
	// Слот начинается через час, минимальный lead time два часа
	f := newFixture(freeSlot(11, 15))

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTooSoon)
	assert.Empty(t, f.slots.inserted)
	assert.Zero(t, f.notifier.requested)
}

func TestExecute_DurationNotOffered(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	req := validRequest()
	req.Duration = 45

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDurationNotOffered)
}

func TestExecute_DurationExceedsSlot(t *testing.T) {
	f := newFixture(freeSlot(12, 13))

	req := validRequest()
	req.Duration = 90

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDurationExceedsSlot)
}

func TestExecute_OutOfWindow(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	req := validRequest()
	start := at(17, 30)
	req.StartAt = &start

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrOutOfWindow)
}

func TestExecute_StartBeforeSlot(t *testing.T) {
	f := newFixture(freeSlot(14, 18))

	req := validRequest()
	start := at(13, 0)
	req.StartAt = &start

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrOutOfWindow)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	f := newFixture(freeSlot(12, 18))
	f.slots.findErr = slotRepo.ErrSlotNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.True(t, f.tx.rolledBack)
}

func TestExecute_SlotBusyIsRetryable(t *testing.T) {
	f := newFixture(freeSlot(12, 18))
	f.slots.findErr = slotRepo.ErrSlotLocked

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotBusy)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(freeSlot(12, 18))
	f.services.err = svcRepo.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	cases := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty name", func(r *Request) { r.ClientName = "  " }},
		{"bad email", func(r *Request) { r.ClientEmail = "not-an-email" }},
		{"zero duration", func(r *Request) { r.Duration = 0 }},
		{"zero slot id", func(r *Request) { r.SlotID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CreateFailureRollsBack(t *testing.T) {
	f := newFixture(freeSlot(12, 18))
	f.bookings.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
	assert.True(t, f.tx.rolledBack)
	assert.Zero(t, f.notifier.requested, "notification must not be sent on rollback")
}

func TestExecute_LosslessSplit(t *testing.T) {
	f := newFixture(freeSlot(12, 18))

	req := validRequest()
	start := at(14, 0)
	req.StartAt = &start

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Дети разбиения покрывают исходное окно без дыр, кроме вырезанной паузы
	var freeMinutes, bookedMinutes int
	for _, s := range f.slots.inserted {
		if s.IsBooked {
			bookedMinutes += s.DurationMinutes()
		} else {
			freeMinutes += s.DurationMinutes()
		}
	}
	assert.Equal(t, 60, bookedMinutes)
	assert.Equal(t, 360-60-60, freeMinutes)
}
