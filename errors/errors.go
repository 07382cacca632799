/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a handle is not registered at the backend
	ErrNotFound = errors.New("handle not found")

	// ErrAlreadyExists is returned when attempting to mint a handle that already exists
	ErrAlreadyExists = errors.New("handle already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional backend write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrServiceFailure is returned when the handle service answers with an unexpected status
	ErrServiceFailure = errors.New("handle service failure")

	// ErrUnknownBackend is returned when no backend is registered under the configured name
	ErrUnknownBackend = errors.New("unknown handle backend")
)

// NotFoundError represents an error when a handle is not registered
type NotFoundError struct {
	Handle string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("handle %q not found", e.Handle)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a handle is already registered
type AlreadyExistsError struct {
	Handle string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("handle %q already exists", e.Handle)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// ServiceError describes a non-successful answer from a handle service.
// ResponseCode carries the Handle.net responseCode when the body had one.
type ServiceError struct {
	Operation    string
	Handle       string
	StatusCode   int
	ResponseCode int
	Message      string
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s %q: handle service returned status %d", e.Operation, e.Handle, e.StatusCode)
	if e.ResponseCode != 0 {
		msg += fmt.Sprintf(" (responseCode %d)", e.ResponseCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceFailure
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(handle string) error {
	return &NotFoundError{Handle: handle}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(handle string) error {
	return &AlreadyExistsError{Handle: handle}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewServiceError creates a new ServiceError
func NewServiceError(operation, handle string, statusCode, responseCode int, message string) error {
	return &ServiceError{
		Operation:    operation,
		Handle:       handle,
		StatusCode:   statusCode,
		ResponseCode: responseCode,
		Message:      message,
	}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsServiceFailure checks if an error came from an unexpected handle service answer
func IsServiceFailure(err error) bool {
	return errors.Is(err, ErrServiceFailure)
}
