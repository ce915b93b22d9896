// Package errors provides error handling for the Akismet API client
package errors

import (
	stderrors "errors"
	"fmt"
)

// AkismetError represents the different types of errors that can occur
type AkismetError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// ErrorType represents the type of error
type ErrorType int

const (
	ConfigError ErrorType = iota
	TransportError
	MalformedResponseError
	IOError
	StorageError
	EncryptionError
	UnknownError
)

// String returns the short name of the error type, used as a metrics label
func (t ErrorType) String() string {
	switch t {
	case ConfigError:
		return "config"
	case TransportError:
		return "transport"
	case MalformedResponseError:
		return "malformed_response"
	case IOError:
		return "io"
	case StorageError:
		return "storage"
	case EncryptionError:
		return "encryption"
	default:
		return "unknown"
	}
}

// Error implements the error interface
func (e *AkismetError) Error() string {
	switch e.Type {
	case ConfigError:
		return fmt.Sprintf("Configuration error: %s", e.Message)
	case TransportError:
		return fmt.Sprintf("Transport error: %s", e.Message)
	case MalformedResponseError:
		return fmt.Sprintf("Malformed response: %s", e.Message)
	case IOError:
		return fmt.Sprintf("IO error: %s", e.Message)
	case StorageError:
		return fmt.Sprintf("Settings storage error: %s", e.Message)
	case EncryptionError:
		return fmt.Sprintf("Encryption error: %s", e.Message)
	case UnknownError:
		return "Unknown error"
	default:
		return fmt.Sprintf("Unknown error: %s", e.Message)
	}
}

// Unwrap returns the underlying cause error
func (e *AkismetError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *AkismetError {
	return &AkismetError{
		Type:    ConfigError,
		Message: message,
	}
}

// NewTransportError creates a new transport error with a cause
func NewTransportError(message string, cause error) *AkismetError {
	return &AkismetError{
		Type:    TransportError,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedResponseError creates a new malformed response error
func NewMalformedResponseError(message string) *AkismetError {
	return &AkismetError{
		Type:    MalformedResponseError,
		Message: message,
	}
}

// NewIOError creates a new IO error
func NewIOError(cause error) *AkismetError {
	return &AkismetError{
		Type:    IOError,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// NewStorageError creates a new settings storage error
func NewStorageError(message string, cause error) *AkismetError {
	return &AkismetError{
		Type:    StorageError,
		Message: message,
		Cause:   cause,
	}
}

// NewEncryptionError creates a new encryption error
func NewEncryptionError(message string) *AkismetError {
	return &AkismetError{
		Type:    EncryptionError,
		Message: message,
	}
}

// NewUnknownError creates a new unknown error
func NewUnknownError() *AkismetError {
	return &AkismetError{
		Type:    UnknownError,
		Message: "",
	}
}

// TypeOf reports the ErrorType of err, or UnknownError if err is not an AkismetError
func TypeOf(err error) ErrorType {
	var ae *AkismetError
	if stderrors.As(err, &ae) {
		return ae.Type
	}
	return UnknownError
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	return err != nil && TypeOf(err) == ConfigError
}

// IsIndeterminate reports whether err leaves the provider's verdict unknown:
// the request may or may not have reached the provider.
func IsIndeterminate(err error) bool {
	if err == nil {
		return false
	}
	switch TypeOf(err) {
	case TransportError, MalformedResponseError, IOError:
		return true
	}
	return false
}
