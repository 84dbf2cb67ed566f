package mailer

import (
	"fmt"
	"log/slog"

	"mailblast/internal/config"
	sl "mailblast/internal/lib/logger"
	"mailblast/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer submits single messages to the configured relay over
// implicit TLS. Credentials are process-wide and read-only after
// startup.
type Mailer struct {
	log *slog.Logger
	cfg config.Mail
}

func New(log *slog.Logger, cfg config.Mail) *Mailer {
	return &Mailer{
		log: log,
		cfg: cfg,
	}
}

// Send is fail-closed: transport errors never escape as errors, they
// become a failed SendResult carrying the detail. No retry, no timeout
// beyond the dialer's own.
func (m *Mailer) Send(to, subject, body string) models.SendResult {
	const op = "mailer.Send"

	log := m.log.With(
		slog.String("op", op),
		slog.String("to", to),
	)

	if body == "" {
		body = "This is a test email."
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.User, m.cfg.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", fmt.Sprintf("<p>%s</p>", body))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	dialer.SSL = m.cfg.Port == 465

	if err := dialer.DialAndSend(msg); err != nil {
		log.Error("failed to send email", sl.Err(err))

		return models.SendResult{
			Delivered: false,
			Detail:    err.Error(),
		}
	}

	log.Info("email sent")

	return models.SendResult{
		Delivered: true,
		Detail:    fmt.Sprintf("Email sent to %s", to),
	}
}
