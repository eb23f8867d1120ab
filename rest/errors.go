package rest

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// NotFoundError is returned when a path identifier matches no document.
// It is reported with status 401 for compatibility with existing clients.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Invalid %sId", e.Resource)
}

// StoreError wraps a failure of the store call itself.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string { return e.Err.Error() }
func (e StoreError) Cause() error  { return e.Err }
func (e StoreError) Unwrap() error { return e.Err }

// ValidationError rejects a request body before any store call.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }
func (e ValidationError) Cause() error  { return e.Err }
func (e ValidationError) Unwrap() error { return e.Err }

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewNotFoundError(resource string) error {
	return NotFoundError{Resource: resource}
}

// NewStoreError marks err as a store failure. A nil err stays nil.
func NewStoreError(err error) error {
	if err == nil {
		return nil
	}
	return StoreError{Err: err}
}

// NewValidationError marks err as rejected input. A nil err stays nil.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ValidationError{Err: err}
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsStoreError(err error) bool {
	var target StoreError
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// ErrorResponse maps err onto its status code and message body.
func ErrorResponse(err error) (int, MessageResponse) {
	var (
		notFound   NotFoundError
		store      StoreError
		validation ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusUnauthorized, MessageResponse{Message: notFound.Error()}
	case errors.As(err, &store):
		return http.StatusNotImplemented, MessageResponse{Message: "MongoDB Exception: " + store.Error()}
	case errors.As(err, &validation):
		return http.StatusBadRequest, MessageResponse{Message: "Validation Exception: " + validation.Error()}
	default:
		return http.StatusInternalServerError, ServerException(err)
	}
}

// ServerException is the body written for unexpected failures.
func ServerException(err error) MessageResponse {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return MessageResponse{Message: "Server Exception: " + msg}
}
