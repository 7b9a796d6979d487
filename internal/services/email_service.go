package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"hungerscrm/internal/models"
)

type EmailService interface {
	SendActivityScheduled(deal *models.Deal, act *models.Activity) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailService returns nil when no SMTP host is configured; the
// callers treat a nil service as "notifications off".
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, notifyEmail string) EmailService {
	if smtpHost == "" || notifyEmail == "" {
		return nil
	}
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		to:     notifyEmail,
	}
}

func (s *emailService) SendActivityScheduled(deal *models.Deal, act *models.Activity) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Nueva actividad: %s — %s", act.Type, deal.Title))

	body := fmt.Sprintf(`
		<h3>Actividad programada</h3>
		<p><strong>%s</strong> para el trato <strong>%s</strong> (%s)</p>
		<p>%s</p>
		<p>Fecha: %s · Vendedor: %s</p>
	`, act.Type, deal.Title, deal.Organization, act.Content, act.Date, models.SellerName(deal.SellerID))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send activity email: %w", err)
	}
	return nil
}
