package email

// Provider sends email. The renewal worker and provisioning welcome mail are
// the only producers; failures are logged, never surfaced to API callers.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders one of the built-in templates and sends it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}
