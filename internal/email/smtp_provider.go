package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the dialer settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider sends mail through an SMTP relay via gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	renderer *TemplateManager
}

func NewSMTPProvider(config *SMTPConfig, renderer *TemplateManager) *SMTPProvider {
	return &SMTPProvider{
		config:   config,
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if p.config.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTML {
		m.SetBody("text/html", email.Body)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.config.Host,
		p.config.Port,
		p.config.Username,
		p.config.Password,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:      to,
		Subject: subject,
		Body:    body,
		HTML:    true,
	})
}
