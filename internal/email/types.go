package email

// Email is one outgoing message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// TemplateData feeds the built-in templates.
type TemplateData map[string]interface{}
