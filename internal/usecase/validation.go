package usecase

import (
	"sort"
	"strings"
)

// ValidationError reports per-field problems with a submit. When a submit
// fails validation no remote write is attempted; the fields map goes back
// to the client for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// newFieldError builds a single-field validation error.
func newFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// requireFields collects the blank entries of a field map into one
// ValidationError, nil when everything is filled.
func requireFields(fields map[string]string) *ValidationError {
	missing := map[string]string{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = "required"
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
