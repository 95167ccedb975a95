package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode int

const (
	ErrorCodeNotFound ErrorCode = iota + 1
	ErrorCodeRejected
	ErrorCodeValidation
	ErrorCodeTransport
	ErrorCodeDecode
	ErrorCodeClipboard
	ErrorCodeUnsupported
	ErrorCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeRejected:
		return "rejected"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeTransport:
		return "transport"
	case ErrorCodeDecode:
		return "decode"
	case ErrorCodeClipboard:
		return "clipboard"
	case ErrorCodeUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// ServiceError carries the operation that failed and a user-presentable
// Message. For ErrorCodeRejected the Message is the Link Service's own text.
type ServiceError struct {
	Op      string
	Code    ErrorCode
	Message string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(op, message string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeNotFound,
		Message: message,
	}
}

// NewRejectedError records a non-201 answer from the Link Service.
func NewRejectedError(op string, status int, message string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeRejected,
		Message: message,
		Status:  status,
	}
}

func NewValidationError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeValidation,
		Message: message,
		Err:     err,
	}
}

func NewTransportError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeTransport,
		Message: message,
		Err:     err,
	}
}

func NewDecodeError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeDecode,
		Message: message,
		Err:     err,
	}
}

func NewClipboardError(op string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeClipboard,
		Message: "failed to write clipboard",
		Err:     err,
	}
}

func NewUnsupportedError(op, message string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeUnsupported,
		Message: message,
	}
}

func NewInternalError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeInternal,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first ServiceError in err's chain, or
// ErrorCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return ErrorCodeInternal
}

// IsUserFacing reports whether err should be shown to the user rather than
// only logged.
func IsUserFacing(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeRejected, ErrorCodeValidation:
		return true
	default:
		return false
	}
}

// MessageOf returns the ServiceError message of err, falling back to err.Error().
// StatusOf returns the Link Service HTTP status recorded on err, or 0.
func StatusOf(err error) int {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.Status
	}
	return 0
}

func MessageOf(err error) string {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return err.Error()
}
