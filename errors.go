package xjx

import (
	"errors"
	"fmt"
)

// Standard library-level errors
var (
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeXMLParse      ErrorType = "xml-parse"
	ErrorTypeJSONToXML     ErrorType = "json-to-xml"
	ErrorTypeEnvironment   ErrorType = "environment"
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Error is a conversion error with context. Errors raised deep in a
// recursive conversion propagate to the entry point unchanged; the Path
// field identifies the offending node where feasible.
type Error struct {
	Type    ErrorType
	Message string
	Path    string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison by error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfigurationError creates an error for an invalid or internally
// inconsistent configuration.
func NewConfigurationError(message string, err error) *Error {
	return &Error{Type: ErrorTypeConfiguration, Message: message, Err: err}
}

// NewXMLParseError creates an error for malformed XML handed to the
// XML-to-JSON path.
func NewXMLParseError(message string, err error) *Error {
	return &Error{Type: ErrorTypeXMLParse, Message: message, Err: err}
}

// NewJSONToXMLError creates an error for a JSON shape that cannot be
// reconciled with any recognized XML construct.
func NewJSONToXMLError(message, path string, err error) *Error {
	return &Error{Type: ErrorTypeJSONToXML, Message: message, Path: path, Err: err}
}

// NewEnvironmentError creates an error for a missing or incapable
// document provider.
func NewEnvironmentError(message string, err error) *Error {
	return &Error{Type: ErrorTypeEnvironment, Message: message, Err: err}
}

// NewInputError creates an error related to input handling.
func NewInputError(message string, err error) *Error {
	return &Error{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewOutputError creates an error related to output handling.
func NewOutputError(message string, err error) *Error {
	return &Error{Type: ErrorTypeOutput, Message: message, Err: err}
}

// newConfigurationErrorAt builds a configuration conflict error carrying
// the offending node path.
func newConfigurationErrorAt(message, path string) *Error {
	return &Error{Type: ErrorTypeConfiguration, Message: message, Path: path}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var convErr *Error
	if errors.As(err, &convErr) {
		msg := convErr.Message
		if convErr.Path != "" {
			msg = fmt.Sprintf("%s (at %s)", msg, convErr.Path)
		}
		switch convErr.Type {
		case ErrorTypeConfiguration:
			return fmt.Sprintf("Configuration error: %s", msg)
		case ErrorTypeXMLParse:
			return fmt.Sprintf("XML parsing error: %s", msg)
		case ErrorTypeJSONToXML:
			return fmt.Sprintf("JSON conversion error: %s", msg)
		case ErrorTypeEnvironment:
			return fmt.Sprintf("Environment error: %s", msg)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", msg)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", msg)
		default:
			return fmt.Sprintf("Error: %s", msg)
		}
	}

	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
