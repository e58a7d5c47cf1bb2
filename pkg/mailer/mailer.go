package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/arcanalabs/tarot-backend/pkg/config"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Send delivers a single HTML mail. Returns an error when SMTP is not
// configured or delivery fails; callers decide whether that is fatal.
func (m *Mailer) Send(to, subject, body string) error {
	s := m.cfg.SMTP
	if s.Host == "" || s.Port == "" {
		return fmt.Errorf("smtp not configured")
	}
	sender := s.Sender
	if sender == "" {
		sender = "no-reply@localhost"
	}

	var auth smtp.Auth
	if s.Username != "" && s.Password != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, sender, []string{to}, msg); err != nil {
		m.log.Errorw("smtp_send_failed", "to", to, "err", err)
		return err
	}
	m.log.Infow("smtp_sent", "to", to, "subject", subject)
	return nil
}

var Module = fx.Options(
	fx.Provide(New),
)
