package validator

import (
	"net/mail"
	"strings"
)

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field validation failures.
// It is inspectable by the caller; the handler layer surfaces the first
// message to the user instead of crashing the request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// First returns the first field message, for inline display
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// BookingForm carries raw booking form input
type BookingForm struct {
	PackageID string
	Name      string
	Email     string
	Phone     string
	Message   string
}

// ContactForm carries raw contact form input
type ContactForm struct {
	Name    string
	Email   string
	Message string
}

// FormValidator validates raw form submissions into typed records
type FormValidator struct{}

// NewFormValidator creates a new form validator instance
func NewFormValidator() *FormValidator {
	return &FormValidator{}
}

// ValidateBooking checks a booking submission.
// packageId must be present, name at least 2 characters, email a valid
// address; phone and message are optional and unconstrained.
func (v *FormValidator) ValidateBooking(form BookingForm) error {
	verr := &ValidationError{}

	if strings.TrimSpace(form.PackageID) == "" {
		verr.add("packageId", "Package is required")
	}
	if len(form.Name) < 2 {
		verr.add("name", "Name must be at least 2 characters")
	}
	if !v.IsValidEmail(form.Email) {
		verr.add("email", "Invalid email address")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ValidateContact checks a contact submission.
// name at least 2 characters, email a valid address, message at least 10.
func (v *FormValidator) ValidateContact(form ContactForm) error {
	verr := &ValidationError{}

	if len(form.Name) < 2 {
		verr.add("name", "Name must be at least 2 characters")
	}
	if !v.IsValidEmail(form.Email) {
		verr.add("email", "Invalid email address")
	}
	if len(form.Message) < 10 {
		verr.add("message", "Message must be at least 10 characters")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// IsValidEmail reports whether addr parses as a bare email address
func (v *FormValidator) IsValidEmail(addr string) bool {
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	// Reject display-name forms like "Name <a@b.com>"
	return parsed.Address == addr
}
