package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Built-in template names.
const (
	TemplateWelcome         = "welcome"
	TemplateRenewalReminder = "renewal_reminder"
)

var builtinTemplates = map[string]string{
	TemplateWelcome: `<p>Hi {{.FirstName}},</p>
<p>An account has been created for you at {{.TenantName}}. Use the password
reset link from your sign-in page to set a password and get started.</p>`,

	TemplateRenewalReminder: `<p>Hi {{.FullName}},</p>
<p>Your {{.PlanName}} membership at {{.TenantName}} ends on {{.EndDate}}.
Renew now to keep training without interruption.</p>`,
}

// TemplateManager renders the built-in email templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are compiled at startup; a parse failure is a bug.
		tm.templates[name] = template.Must(template.New(name).Parse(body))
	}
	return tm
}

// Render executes a template against data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers an extra template at runtime.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
