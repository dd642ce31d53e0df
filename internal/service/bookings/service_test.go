package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/booking"
	slotStore "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SAMASS-BookingService/internal/service/bookings/models"
)

// Моки

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepo) List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range m.bookings {
		if status == nil || b.Status == *status {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.bookings[id].Status = status
	m.statuses[id] = status
	return nil
}

type mockSlotRepo struct {
	slots  map[int64]*domain.Slot
	freed  []int64
	booked []int64
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, slotStore.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSlotRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, id := range ids {
		if s, ok := m.slots[id]; ok {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockSlotRepo) SetBooked(ctx context.Context, id int64, booked bool) error {
	s, ok := m.slots[id]
	if !ok {
		return slotStore.ErrSlotNotFound
	}
	s.IsBooked = booked
	if booked {
		m.booked = append(m.booked, id)
	} else {
		m.freed = append(m.freed, id)
	}
	return nil
}

var errNotFound = bookingRepo.ErrBookingNotFound

type mockServiceRepo struct {
	services map[int64]*domain.Service
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (m *mockServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range m.services {
		out = append(out, s)
	}
	return out, nil
}

type mockNotifier struct {
	confirmed int
	cancelled int
}

func (m *mockNotifier) BookingConfirmed(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot) {
	m.confirmed++
}

func (m *mockNotifier) BookingCancelled(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot) {
	m.cancelled++
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

func at(hour int) time.Time {
	return time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc      *Service
	bookings *mockBookingRepo
	slots    *mockSlotRepo
	notifier *mockNotifier
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{
			bookings: map[int64]*domain.Booking{
				1: {
					ID:              1,
					ServiceID:       10,
					SlotID:          100,
					ClientName:      "Claire Dupont",
					ClientEmail:     "claire@example.com",
					DurationMinutes: 60,
					Status:          domain.StatusPending,
				},
			},
			statuses: map[int64]domain.BookingStatus{},
		},
		slots: &mockSlotRepo{
			slots: map[int64]*domain.Slot{
				100: {ID: 100, StartAt: at(14), EndAt: at(15), IsBooked: true},
			},
		},
		notifier: &mockNotifier{},
	}

	services := &mockServiceRepo{
		services: map[int64]*domain.Service{
			10: {
				ID:              10,
				Title:           "Massage Tonique",
				DurationsPrices: map[string]float64{"60": 80},
			},
		},
	}

	f.svc = NewService(f.bookings, f.slots, services, f.notifier, passTxManager{}, nopLogger{})
	return f
}

// Тесты

func TestGetByID(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, at(14), resp.StartAt)
	assert.Equal(t, "Massage Tonique", resp.ServiceTitle)
	assert.Equal(t, 80.0, resp.Price)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_SlotDeleted(t *testing.T) {
	f := newFixture()

	// Слот удален (перебронирование отмененного окна обнуляет ссылку),
	// бронирование остается читаемым как история
	f.bookings.bookings[1].SlotID = 0
	delete(f.slots.slots, 100)

	resp, err := f.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.StartAt.IsZero())
	assert.Equal(t, "Massage Tonique", resp.ServiceTitle)
}

func TestConfirm(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.statuses[1])
	assert.Equal(t, 1, f.notifier.confirmed)
	assert.Equal(t, "Massage Tonique", resp.ServiceTitle)
	assert.Equal(t, 80.0, resp.Price)
	assert.Equal(t, at(14), resp.StartAt)
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].Status = domain.StatusConfirmed

	// Повторное подтверждение проходит: предусловий на текущий статус нет
	resp, err := f.svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestConfirm_AfterCancel(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].Status = domain.StatusCanceled

	resp, err := f.svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestConfirm_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), 99)
	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.Zero(t, f.notifier.confirmed)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "canceled", resp.Status)
	assert.Equal(t, domain.StatusCanceled, f.bookings.statuses[1])
	assert.Equal(t, []int64{100}, f.slots.freed)
	assert.False(t, f.slots.slots[100].IsBooked, "slot must return to the free pool")
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancel_Twice_NoDuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, f.notifier.cancelled, "repeat cancel must not resend the email")
}

func TestCancel_SlotAlreadyDeleted(t *testing.T) {
	f := newFixture()
	delete(f.slots.slots, 100)

	// Слот убрали из календаря вручную, отмена все равно проходит
	resp, err := f.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "canceled", resp.Status)
	assert.Equal(t, domain.StatusCanceled, f.bookings.statuses[1])
	assert.Empty(t, f.slots.freed)
	assert.Zero(t, f.notifier.cancelled, "no email without slot details")
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), 99)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_FilterByStatus(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[2] = &domain.Booking{
		ID:        2,
		ServiceID: 10,
		SlotID:    100,
		Status:    domain.StatusConfirmed,
	}

	status := "confirmed"
	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestList_InvalidStatus(t *testing.T) {
	f := newFixture()

	status := "unknown"
	_, err := f.svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_EmbedsSlotAndService(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)

	b := resp.Bookings[0]
	assert.Equal(t, at(14), b.StartAt)
	assert.Equal(t, at(15), b.EndAt)
	assert.Equal(t, "Massage Tonique", b.ServiceTitle)
	assert.Equal(t, 80.0, b.Price)
}
