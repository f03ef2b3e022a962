package app

import (
	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/logger"
)

// LogEmailProvider stands in when SMTP is not configured: it logs what would
// have been sent and succeeds.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(msg *email.Email) error {
	logger.Info("[email] send skipped (no SMTP)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *LogEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	logger.Info("[email] send skipped (no SMTP)", "to", to, "subject", subject, "template", templateName)
	return nil
}
