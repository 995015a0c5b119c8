package services

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind classifies a ServiceError independently of its HTTP mapping.
type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "permission_denied"
	KindNotFound         ErrorKind = "not_found"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindDuplicateKey     ErrorKind = "duplicate_key"
	KindInvalidState     ErrorKind = "invalid_state"
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindUnexpected       ErrorKind = "unexpected"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func permissionDenied(msg string) *ServiceError {
	return &ServiceError{Kind: KindPermissionDenied, StatusCode: http.StatusForbidden, Message: msg}
}

func notFound(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: msg}
}

func invalidInput(msg string) *ServiceError {
	return &ServiceError{Kind: KindInvalidInput, StatusCode: http.StatusBadRequest, Message: msg}
}

func duplicateKey(msg string) *ServiceError {
	return &ServiceError{Kind: KindDuplicateKey, StatusCode: http.StatusBadRequest, Message: msg}
}

func invalidState(msg string) *ServiceError {
	return &ServiceError{Kind: KindInvalidState, StatusCode: http.StatusConflict, Message: msg}
}

func unauthenticated(msg string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, StatusCode: http.StatusUnauthorized, Message: msg}
}

// unexpected surfaces the underlying error text to the caller.
func unexpected(err error) *ServiceError {
	return &ServiceError{Kind: KindUnexpected, StatusCode: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

// asServiceError returns err unchanged when it already is a *ServiceError
// (possibly wrapped by a transaction) and classifies it as unexpected
// otherwise.
func asServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return unexpected(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
