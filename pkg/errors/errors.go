package errors

import (
	"fmt"
)

// ConfigError reports an invalid client configuration value (empty
// credential, malformed URL, unsupported mode, bad currency code)
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error on field '%s': %s", e.Field, e.Message)
}

// NewConfigError creates a new config error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// ValidationError represents input validation errors raised before a
// request is sent to the gateway
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// AuthError reports a failed OAuth2 token fetch for a scope. Failed
// fetches are never cached, so a retry re-attempts authentication.
type AuthError struct {
	Scope   string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error for scope '%s': %s", e.Scope, e.Message)
}

// NewAuthError creates a new auth error
func NewAuthError(scope, message string) *AuthError {
	return &AuthError{
		Scope:   scope,
		Message: message,
	}
}

// TransportError reports a failure in the HTTP transport itself:
// unsupported method, blank URL, exhausted redirects, network failure
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error
func NewTransportError(message string, err error) *TransportError {
	return &TransportError{
		Message: message,
		Err:     err,
	}
}

// ContractError reports a gateway response that does not match the
// expected shape for the operation. The gateway's own 4xx/5xx JSON
// errors surface here too, so the raw response is kept for diagnosis.
type ContractError struct {
	Operation  string
	Message    string
	StatusCode int
	Body       []byte
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s (status %d, response: %s)", e.Operation, e.Message, e.StatusCode, string(e.Body))
}

// NewContractError creates a new contract error carrying the raw response
func NewContractError(operation, message string, statusCode int, body []byte) *ContractError {
	return &ContractError{
		Operation:  operation,
		Message:    message,
		StatusCode: statusCode,
		Body:       body,
	}
}
