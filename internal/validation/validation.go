package validation

import (
	"strings"
	"time"
	"unicode"
)

// FieldError is one violated rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors accumulates every violated rule; validators never stop at the
// first failure so the caller can render all of them at once.
type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Map flattens the errors to field→message. When a field carries several
// violations the first one wins, matching form-style display.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// Has reports whether a rule on the given field was violated.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// DateOnly truncates a timestamp to its date, the granularity every
// lifecycle rule operates at.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CanonicalLastName returns the lookup form of a last name.
func CanonicalLastName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CanonicalFirstName returns the lookup form of a first name: each
// hyphen- or space-separated part capitalized ("jean-pierre" -> "Jean-Pierre").
func CanonicalFirstName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	upperNext := true
	for _, r := range s {
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		upperNext = r == '-' || r == ' ' || r == '\''
	}
	return b.String()
}
