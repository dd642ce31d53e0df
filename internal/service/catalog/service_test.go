package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	svcRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/service"
	"github.com/m04kA/SAMASS-BookingService/internal/service/catalog/models"
)

type mockServiceRepo struct {
	services map[int64]*domain.Service
	created  *domain.Service
	updated  *domain.Service
	deleted  []int64
}

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	copied := *s
	copied.ID = 1
	m.created = &copied
	return &copied, nil
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if m.updated != nil && m.updated.ID == id {
		return m.updated, nil
	}
	s, ok := m.services[id]
	if !ok {
		return nil, svcRepo.ErrServiceNotFound
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

func (m *mockServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	if _, ok := m.services[s.ID]; !ok {
		return svcRepo.ErrServiceNotFound
	}
	m.updated = s
	return nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.services[id]; !ok {
		return svcRepo.ErrServiceNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validCreate() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		Title:           "Massage Tantrique",
		Description:     "Massage sensoriel lent.",
		DurationsPrices: map[string]float64{"60": 80, "90": 120},
	}
}

func TestCreate(t *testing.T) {
	repo := &mockServiceRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.IsActive, "services are active by default")
	assert.Equal(t, "Massage Tantrique", repo.created.Title)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&mockServiceRepo{}, nopLogger{})

	cases := []struct {
		name   string
		mutate func(r *models.CreateServiceRequest)
	}{
		{"empty title", func(r *models.CreateServiceRequest) { r.Title = "  " }},
		{"empty prices", func(r *models.CreateServiceRequest) { r.DurationsPrices = nil }},
		{"non-numeric duration", func(r *models.CreateServiceRequest) {
			r.DurationsPrices = map[string]float64{"une heure": 80}
		}},
		{"negative duration", func(r *models.CreateServiceRequest) {
			r.DurationsPrices = map[string]float64{"-60": 80}
		}},
		{"negative price", func(r *models.CreateServiceRequest) {
			r.DurationsPrices = map[string]float64{"60": -5}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&mockServiceRepo{services: map[int64]*domain.Service{}}, nopLogger{})

	_, err := svc.Update(context.Background(), 9, &models.UpdateServiceRequest{
		Title:           "Massage Tonique",
		DurationsPrices: map[string]float64{"45": 50},
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDelete(t *testing.T) {
	repo := &mockServiceRepo{services: map[int64]*domain.Service{3: {ID: 3}}}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, []int64{3}, repo.deleted)

	err := svc.Delete(context.Background(), 9)
	require.ErrorIs(t, err, ErrServiceNotFound)
}
