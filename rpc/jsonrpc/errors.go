package jsonrpc

import (
	"errors"
	"fmt"
)

// Standard JSON-RPC error codes
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603

	// ErrCodeRateLimited is returned by transports that throttle clients.
	ErrCodeRateLimited = -32005
)

// Error is the error member of a response.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewError creates a new JSON-RPC error
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// ParamsError reports params that do not have the shape a handler expects.
type ParamsError struct {
	Reason string
}

// NewParamsError creates a params error with the given reason.
func NewParamsError(reason string) *ParamsError {
	return &ParamsError{Reason: reason}
}

func (e *ParamsError) Error() string {
	return e.Reason
}

// IsParamsError reports whether err is or wraps a *ParamsError.
func IsParamsError(err error) bool {
	var perr *ParamsError
	return errors.As(err, &perr)
}

// MethodNotFoundError is returned when no handler is registered for a method.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("Method '%s' not found", e.Method)
}

// IsMethodNotFound reports whether err is or wraps a *MethodNotFoundError.
func IsMethodNotFound(err error) bool {
	var merr *MethodNotFoundError
	return errors.As(err, &merr)
}
