package notifications

import (
	"context"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// MailConfig holds the SMTP settings for the mail sink.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// MailSink sends notifications as plain text mails. Sending happens in a
// separate goroutine per message, failures are only logged.
type MailSink struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailSink returns a sink that delivers via the configured SMTP server.
func NewMailSink(config MailConfig) *MailSink {
	return &MailSink{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
		to:     config.To,
	}
}

func (s *MailSink) Send(_ context.Context, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	go func() {
		if err := s.dialer.DialAndSend(m); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("notification mail could not be sent")
		}
	}()
}
