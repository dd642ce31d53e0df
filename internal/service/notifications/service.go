// Package notifications собирает письма клиенту и администратору и отправляет
// их через почтовый клиент. Контракт: методы ничего не возвращают, ошибки
// доставки логируются и проглатываются — бронирование никогда не падает из-за почты.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	"github.com/m04kA/SAMASS-BookingService/internal/integrations/mailer"
)

// Service сервис уведомлений
type Service struct {
	mail     MailClient
	settings Settings
	loc      *time.Location
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений.
// Время в письмах отображается в часовом поясе салона (Europe/Paris).
func NewService(mail MailClient, settings Settings, logger Logger) *Service {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		logger.Warn("Notifications: failed to load Europe/Paris location, using UTC: %v", err)
		loc = time.UTC
	}

	return &Service{
		mail:     mail,
		settings: settings,
		loc:      loc,
		logger:   logger,
	}
}

// BookingRequested отправляет клиенту подтверждение приёма заявки,
// а администратору — уведомление о новой заявке с окном исходного слота.
func (s *Service) BookingRequested(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot, window domain.Interval) {
	localStart := bookedSlot.StartAt.In(s.loc)

	clientText := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre demande de massage %s (%d min) est enregistrée pour %s.\n\n"+
			"Si vous ne recevez pas de confirmation au plus tard 2h avant l'heure du massage, "+
			"considérez que la demande est annulée.\n\n"+
			"Vous recevrez un email de confirmation ou de refus de la part de Sam. "+
			"Pensez à vérifier vos spams pour ne rien manquer.\n\n"+
			"À bientôt,\nSAMASS",
		b.ClientName, svc.Title, b.DurationMinutes, localStart.Format("02/01/2006 à 15:04"),
	)
	clientHTML := renderEmail(
		"Demande de réservation reçue",
		[]string{
			fmt.Sprintf("Votre demande de massage <strong>%s</strong> (%d min) est enregistrée pour <strong>%s</strong>.",
				svc.Title, b.DurationMinutes, localStart.Format("02/01/2006 à 15:04")),
			"Si vous ne recevez pas de confirmation au plus tard 2h avant l'heure du massage, considérez la demande annulée.",
			"Vous recevrez un email de confirmation ou de refus. Pensez à vérifier vos spams.",
		},
	)
	s.send(ctx, []string{b.ClientEmail}, "Votre demande de réservation – SAMASS", clientText, clientHTML)

	localWinStart := window.Start.In(s.loc)
	localWinEnd := window.End.In(s.loc)
	adminHTML := renderEmail(
		"Nouvelle demande de réservation",
		[]string{
			fmt.Sprintf("<strong>Client :</strong> %s (%s)", b.ClientName, b.ClientEmail),
			fmt.Sprintf("<strong>Service :</strong> %s", svc.Title),
			fmt.Sprintf("<strong>Durée :</strong> %d min", b.DurationMinutes),
			fmt.Sprintf("<strong>Créneau :</strong> %s → %s",
				localWinStart.Format("02/01/2006 15:04"), localWinEnd.Format("15:04")),
			fmt.Sprintf("<a href='%s' style='color:#047857;'>Ouvrir l’espace admin</a>", s.settings.AdminPortalURL),
		},
	)
	s.send(ctx, []string{s.settings.AdminEmail}, "Nouvelle demande de réservation – SAMASS",
		"Nouvelle demande de réservation.", adminHTML)
}

// BookingConfirmed отправляет клиенту подтверждение с адресом и кодом доступа
func (s *Service) BookingConfirmed(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot) {
	localStart := bookedSlot.StartAt.In(s.loc)

	text := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Je fais suite à votre demande de massage %s de %d minutes.\n\n"+
			"Je vous attends pour %s le %s.\n\n"+
			"L’adresse : %s\n"+
			"Place 🅿️ : %s\n"+
			"Code : %s\n"+
			"Accès : %s\n\n"+
			"Merci de me prévenir en cas d’imprévu.\n\n"+
			"Cordialement,\nSam 🍃",
		b.ClientName, svc.Title, b.DurationMinutes,
		localStart.Format("15:04"), localStart.Format("02/01/2006"),
		s.settings.Location, s.settings.Parking, s.settings.DoorCode, s.settings.Floor,
	)
	html := renderEmail(
		"Réservation confirmée",
		[]string{
			fmt.Sprintf("Massage <strong>%s</strong> (%d min).", svc.Title, b.DurationMinutes),
			fmt.Sprintf("Rendez-vous le <strong>%s</strong> à <strong>%s</strong>.",
				localStart.Format("02/01/2006"), localStart.Format("15:04")),
			fmt.Sprintf("Adresse : %s", s.settings.Location),
			fmt.Sprintf("Place 🅿️ : %s • Code : %s • Accès : %s",
				s.settings.Parking, s.settings.DoorCode, s.settings.Floor),
			"Merci de prévenir en cas d’imprévu.",
		},
	)

	s.send(ctx, []string{b.ClientEmail}, "Votre réservation est confirmée – SAMASS", text, html)
}

// BookingCancelled отправляет клиенту уведомление об отмене и освобождении слота
func (s *Service) BookingCancelled(ctx context.Context, b *domain.Booking, svc *domain.Service, bookedSlot *domain.Slot) {
	localStart := bookedSlot.StartAt.In(s.loc)

	text := fmt.Sprintf(
		"Votre créneau pour %s a été libéré. "+
			"Sam a décliné pour raisons personnelles. "+
			"Vous pouvez choisir un autre créneau ou le contacter : %s",
		svc.Title, s.settings.ContactURL,
	)
	html := renderEmail(
		"Réservation annulée",
		[]string{
			fmt.Sprintf("Votre réservation pour <strong>%s</strong> le <strong>%s</strong> à <strong>%s</strong> n’a pas été confirmée.",
				svc.Title, localStart.Format("02/01/2006"), localStart.Format("15:04")),
			"Sam a décliné pour raisons personnelles. Vous pouvez choisir un autre créneau ou lui écrire directement pour en savoir plus.",
			fmt.Sprintf("<a href='%s' style='color:#047857;'>Contacter Sam</a>", s.settings.ContactURL),
		},
	)

	s.send(ctx, []string{b.ClientEmail}, "Votre réservation a été annulée – SAMASS", text, html)
}

// ContactReceived отправляет администратору новое сообщение формы обратной связи,
// а клиенту — подтверждение получения
func (s *Service) ContactReceived(ctx context.Context, m *domain.ContactMessage) {
	phone := m.Phone
	if phone == "" {
		phone = "—"
	}

	adminHTML := renderEmail(
		"Nouveau message de contact",
		[]string{
			fmt.Sprintf("<strong>Nom :</strong> %s", m.Name),
			fmt.Sprintf("<strong>Email :</strong> %s", m.Email),
			fmt.Sprintf("<strong>Téléphone :</strong> %s", phone),
			fmt.Sprintf("<strong>Message :</strong><br/>%s", m.Message),
		},
	)
	s.send(ctx, []string{s.settings.AdminEmail},
		fmt.Sprintf("Nouveau message – %s", m.Name),
		fmt.Sprintf("Message de %s (%s) : %s", m.Name, m.Email, m.Message),
		adminHTML)

	clientHTML := renderEmail(
		"Votre message a bien été reçu",
		[]string{
			fmt.Sprintf("Bonjour %s,", m.Name),
			"Merci pour votre message. Je reviens vers vous rapidement.",
			"Pensez à vérifier vos spams pour ne rien manquer.",
		},
	)
	s.send(ctx, []string{m.Email}, "Votre message a bien été reçu – SAMASS",
		"Merci pour votre message. Je reviens vers vous rapidement.", clientHTML)
}

// send отправляет одно письмо. Ошибка доставки логируется и не пробрасывается.
func (s *Service) send(ctx context.Context, to []string, subject, text, html string) {
	err := s.mail.Send(ctx, &mailer.Message{
		From:    s.settings.FromEmail,
		To:      to,
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
	if err != nil {
		s.logger.Warn("Notifications: email not sent to=%v subject=%q: %v", to, subject, err)
	}
}
