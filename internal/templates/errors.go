package templates

import "fmt"

// NotFoundError is returned when no template is registered under a name
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %q", e.Name)
}

// TemplateError represents an error parsing or executing a CV template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
