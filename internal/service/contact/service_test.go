package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	contactRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/contact"
	"github.com/m04kA/SAMASS-BookingService/internal/service/contact/models"
)

type mockMessageRepo struct {
	messages map[int64]*domain.ContactMessage
	created  *domain.ContactMessage
	read     map[int64]bool
	deleted  []int64
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	copied := *msg
	copied.ID = 5
	m.created = &copied
	return &copied, nil
}

func (m *mockMessageRepo) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	var out []*domain.ContactMessage
	for _, msg := range m.messages {
		out = append(out, msg)
	}
	return out, nil
}

func (m *mockMessageRepo) SetRead(ctx context.Context, id int64, isRead bool) error {
	if _, ok := m.messages[id]; !ok {
		return contactRepo.ErrMessageNotFound
	}
	m.read[id] = isRead
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.messages[id]; !ok {
		return contactRepo.ErrMessageNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockNotifier struct {
	received int
}

func (m *mockNotifier) ContactReceived(ctx context.Context, msg *domain.ContactMessage) {
	m.received++
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validSubmit() *models.SubmitMessageRequest {
	return &models.SubmitMessageRequest{
		Name:    "Claire Dupont",
		Email:   "claire@example.com",
		Message: "Bonjour, est-ce possible de réserver un samedi ?",
	}
}

func TestSubmit(t *testing.T) {
	repo := &mockMessageRepo{}
	notifier := &mockNotifier{}
	svc := NewService(repo, notifier, nopLogger{})

	resp, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.False(t, resp.IsRead)
	assert.Equal(t, 1, notifier.received)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(&mockMessageRepo{}, &mockNotifier{}, nopLogger{})

	cases := []struct {
		name   string
		mutate func(r *models.SubmitMessageRequest)
	}{
		{"empty name", func(r *models.SubmitMessageRequest) { r.Name = " " }},
		{"bad email", func(r *models.SubmitMessageRequest) { r.Email = "claire" }},
		{"empty message", func(r *models.SubmitMessageRequest) { r.Message = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmit()
			tc.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSetRead(t *testing.T) {
	repo := &mockMessageRepo{
		messages: map[int64]*domain.ContactMessage{2: {ID: 2}},
		read:     map[int64]bool{},
	}
	svc := NewService(repo, &mockNotifier{}, nopLogger{})

	require.NoError(t, svc.SetRead(context.Background(), 2, true))
	assert.True(t, repo.read[2])

	err := svc.SetRead(context.Background(), 9, true)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestDelete(t *testing.T) {
	repo := &mockMessageRepo{
		messages: map[int64]*domain.ContactMessage{2: {ID: 2}},
	}
	svc := NewService(repo, &mockNotifier{}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.Equal(t, []int64{2}, repo.deleted)

	err := svc.Delete(context.Background(), 9)
	require.ErrorIs(t, err, ErrMessageNotFound)
}
