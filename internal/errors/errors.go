package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// AllocationExhaustedError means every identifier in 0001-9999 is taken.
// The order that triggered it must not be persisted.
type AllocationExhaustedError struct {
	Attempts int
}

func (e *AllocationExhaustedError) Error() string {
	return fmt.Sprintf("order id space exhausted after %d probes", e.Attempts)
}

func NewAllocationExhaustedError(attempts int) *AllocationExhaustedError {
	return &AllocationExhaustedError{Attempts: attempts}
}

func IsAllocationExhaustedError(err error) (*AllocationExhaustedError, bool) {
	var ae *AllocationExhaustedError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

type StorageError struct {
	Op         string
	Collection string
	Cause      error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Collection)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(op, collection string, cause error) *StorageError {
	return &StorageError{
		Op:         op,
		Collection: collection,
		Cause:      cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type ExternalServiceError struct {
	Service string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Service, e.Cause)
	}
	return e.Service
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{
		Service: service,
		Cause:   cause,
	}
}

func IsExternalServiceError(err error) (*ExternalServiceError, bool) {
	var ee *ExternalServiceError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
