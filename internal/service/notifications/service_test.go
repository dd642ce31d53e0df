package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	"github.com/m04kA/SAMASS-BookingService/internal/integrations/mailer"
)

type mockMailClient struct {
	sent []*mailer.Message
	err  error
}

func (m *mockMailClient) Send(ctx context.Context, msg *mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type countLogger struct {
	warns int
}

func (l *countLogger) Info(format string, v ...interface{})  {}
func (l *countLogger) Warn(format string, v ...interface{})  { l.warns++ }
func (l *countLogger) Error(format string, v ...interface{}) {}

func testSettings() Settings {
	return Settings{
		AdminEmail: "sam@samass.fr",
		FromEmail:  "SAMASS <reservation@samass.fr>",
	}
}

func testBooking() (*domain.Booking, *domain.Service, *domain.Slot) {
	b := &domain.Booking{
		ID:              1,
		ClientName:      "Claire Dupont",
		ClientEmail:     "claire@example.com",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}
	svc := &domain.Service{Title: "Massage Tonique"}
	slot := &domain.Slot{
		StartAt:  time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 9, 3, 15, 0, 0, 0, time.UTC),
		IsBooked: true,
	}
	return b, svc, slot
}

func TestBookingRequested_SendsClientAndAdminEmails(t *testing.T) {
	mail := &mockMailClient{}
	svc := NewService(mail, testSettings(), &countLogger{})

	b, service, slot := testBooking()
	svc.BookingRequested(context.Background(), b, service, slot, slot.Interval())

	assert.Len(t, mail.sent, 2)
	assert.Equal(t, []string{"claire@example.com"}, mail.sent[0].To)
	assert.Equal(t, []string{"sam@samass.fr"}, mail.sent[1].To)
}

func TestBookingConfirmed_SendsClientEmail(t *testing.T) {
	mail := &mockMailClient{}
	svc := NewService(mail, testSettings(), &countLogger{})

	b, service, slot := testBooking()
	svc.BookingConfirmed(context.Background(), b, service, slot)

	assert.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"claire@example.com"}, mail.sent[0].To)
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	mail := &mockMailClient{err: errors.New("resend: 503")}
	log := &countLogger{}
	svc := NewService(mail, testSettings(), log)

	b, service, slot := testBooking()

	// Методы не возвращают ошибок и не паникуют при сбое почты
	svc.BookingRequested(context.Background(), b, service, slot, slot.Interval())
	svc.BookingConfirmed(context.Background(), b, service, slot)
	svc.BookingCancelled(context.Background(), b, service, slot)

	assert.Empty(t, mail.sent)
	assert.GreaterOrEqual(t, log.warns, 4, "each failed email is logged")
}

func TestContactReceived_SendsAdminAndAck(t *testing.T) {
	mail := &mockMailClient{}
	svc := NewService(mail, testSettings(), &countLogger{})

	svc.ContactReceived(context.Background(), &domain.ContactMessage{
		Name:    "Claire Dupont",
		Email:   "claire@example.com",
		Message: "Bonjour",
	})

	assert.Len(t, mail.sent, 2)
	assert.Equal(t, []string{"sam@samass.fr"}, mail.sent[0].To)
	assert.Equal(t, []string{"claire@example.com"}, mail.sent[1].To)
}
