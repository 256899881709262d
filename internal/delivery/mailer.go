package delivery

import (
	"fmt"
	"log/slog"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/Veraticus/billfold/internal/config"
	"github.com/Veraticus/billfold/internal/service"
)

// SMTPMailer sends the two delivery emails over one SMTP session.
type SMTPMailer struct {
	dialer     *gomail.Dialer
	logger     *slog.Logger
	from       string
	adminEmail string
}

// NewSMTPMailer creates a mailer from the SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig, adminEmail string) *SMTPMailer {
	return &SMTPMailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.From,
		adminEmail: adminEmail,
		logger:     slog.Default().With("component", "delivery"),
	}
}

// SendReport dials once and sends both messages on that session: the
// requester gets every consolidated file as an attachment, the admin
// gets the newline-joined list of public URLs. Any failure aborts.
func (m *SMTPMailer) SendReport(requester string, attachments []string, urls []string) error {
	requesterMsg := gomail.NewMessage()
	requesterMsg.SetHeader("From", m.from)
	requesterMsg.SetHeader("To", requester)
	requesterMsg.SetHeader("Subject", "Your consolidated invoices")
	requesterMsg.SetBody("text/plain", "Attached are the consolidated invoice files you requested.")
	for _, path := range attachments {
		requesterMsg.Attach(path)
	}

	adminMsg := gomail.NewMessage()
	adminMsg.SetHeader("From", m.from)
	adminMsg.SetHeader("To", m.adminEmail)
	adminMsg.SetHeader("Subject", fmt.Sprintf("Consolidated invoices requested by %s", requester))
	adminMsg.SetBody("text/plain", strings.Join(urls, "\n"))

	sender, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("failed to connect to mail server: %w", err)
	}
	defer func() { _ = sender.Close() }()

	if err := gomail.Send(sender, requesterMsg, adminMsg); err != nil {
		return fmt.Errorf("failed to send report emails: %w", err)
	}

	m.logger.Info("Sent report emails",
		"requester", requester,
		"attachments", len(attachments),
		"urls", len(urls))
	return nil
}

// Ensure SMTPMailer implements the Mailer interface.
var _ service.Mailer = (*SMTPMailer)(nil)
