package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SAMASS-BookingService/internal/service/availability/models"
	"github.com/m04kA/SAMASS-BookingService/pkg/ptr"
)

type mockSlotRepo struct {
	all         []*domain.Slot
	free        []*domain.Slot
	listedAll   bool
	queriedDate *time.Time
	inserted    []domain.Interval
	updated     *domain.Slot
	deleted     []int64
	notFound    bool
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	if m.updated != nil && m.updated.ID == id {
		return m.updated, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (m *mockSlotRepo) List(ctx context.Context) ([]*domain.Slot, error) {
	m.listedAll = true
	return m.all, nil
}

func (m *mockSlotRepo) QueryFree(ctx context.Context, now time.Time, date *time.Time) ([]*domain.Slot, error) {
	m.queriedDate = date
	return m.free, nil
}

func (m *mockSlotRepo) InsertFree(ctx context.Context, interval domain.Interval) (*domain.Slot, error) {
	m.inserted = append(m.inserted, interval)
	return &domain.Slot{ID: 7, StartAt: interval.Start, EndAt: interval.End}, nil
}

func (m *mockSlotRepo) Update(ctx context.Context, s *domain.Slot) error {
	if m.notFound {
		return slotRepo.ErrSlotNotFound
	}
	m.updated = s
	return nil
}

func (m *mockSlotRepo) Delete(ctx context.Context, id int64) error {
	if m.notFound {
		return slotRepo.ErrSlotNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func at(hour int) time.Time {
	return time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
}

func newService(repo *mockSlotRepo) *Service {
	return NewService(repo, passTxManager{}, nopLogger{})
}

func TestList_NoDateReturnsFullCalendar(t *testing.T) {
	repo := &mockSlotRepo{
		all: []*domain.Slot{
			{ID: 1, StartAt: at(10), EndAt: at(12)},
			{ID: 2, StartAt: at(14), EndAt: at(15), IsBooked: true},
			{ID: 3, StartAt: at(16), EndAt: at(18)},
		},
	}

	resp, err := newService(repo).List(context.Background(), &models.ListSlotsRequest{})
	require.NoError(t, err)

	// Без фильтра отдается весь календарь, занятые слоты включены
	assert.True(t, repo.listedAll)
	assert.Nil(t, repo.queriedDate)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 120, resp.Slots[0].DurationMinutes)
	assert.True(t, resp.Slots[1].IsBooked)
}

func TestList_WithDateFilter(t *testing.T) {
	repo := &mockSlotRepo{}
	svc := newService(repo)

	_, err := svc.List(context.Background(), &models.ListSlotsRequest{Date: ptr.Ptr("2026-09-01")})
	require.NoError(t, err)
	require.NotNil(t, repo.queriedDate)
	assert.False(t, repo.listedAll)

	// Календарный день интерпретируется в поясе салона
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, svc.loc), *repo.queriedDate)
}

func TestList_InvalidDate(t *testing.T) {
	repo := &mockSlotRepo{}

	_, err := newService(repo).List(context.Background(), &models.ListSlotsRequest{Date: ptr.Ptr("01/09/2026")})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreate(t *testing.T) {
	repo := &mockSlotRepo{}

	resp, err := newService(repo).Create(context.Background(), &models.CreateSlotRequest{
		StartAt: at(10),
		EndAt:   at(13),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, domain.Interval{Start: at(10), End: at(13)}, repo.inserted[0])
}

func TestCreate_InvalidInterval(t *testing.T) {
	repo := &mockSlotRepo{}

	_, err := newService(repo).Create(context.Background(), &models.CreateSlotRequest{
		StartAt: at(13),
		EndAt:   at(10),
	})
	require.ErrorIs(t, err, ErrInvalidInterval)
	assert.Empty(t, repo.inserted)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockSlotRepo{notFound: true}

	_, err := newService(repo).Update(context.Background(), 5, &models.UpdateSlotRequest{
		StartAt: at(10),
		EndAt:   at(12),
	})
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete(t *testing.T) {
	repo := &mockSlotRepo{}

	require.NoError(t, newService(repo).Delete(context.Background(), 3))
	assert.Equal(t, []int64{3}, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockSlotRepo{notFound: true}

	err := newService(repo).Delete(context.Background(), 3)
	require.ErrorIs(t, err, ErrSlotNotFound)
}
