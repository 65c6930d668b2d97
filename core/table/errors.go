package table

import "fmt"

// MissingFieldError reports a declared key field that a record does not carry.
// A field that is present but empty is not an error.
type MissingFieldError struct {
	// Kind is the name of the table kind that declared the field.
	Kind string
	// Field is the declared field name.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing key field %q", e.Kind, e.Field)
}

// ConfigurationError reports a table or join that was set up inconsistently.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
