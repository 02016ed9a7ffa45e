package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a blank compose file
	ErrEmptyInput = errors.New("compose file is empty")

	// ErrInvalidYAML is returned when the file is not a YAML mapping or
	// compose-go rejects it
	ErrInvalidYAML = errors.New("invalid compose file")

	// ErrNoServices is returned when the project defines no services
	ErrNoServices = errors.New("compose file must define at least one service")

	// ErrServiceNoImage is returned for build-only services
	ErrServiceNoImage = errors.New("service must have an image")

	// ErrInvalidPort is returned for expose entries that are not a port or
	// port range
	ErrInvalidPort = errors.New("invalid port")
)

// ParseError wraps errors with the compose field that caused them
type ParseError struct {
	Field   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
