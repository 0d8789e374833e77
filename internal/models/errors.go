package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewUnauthorizedError is returned when credentials are missing or invalid.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewForbiddenError is returned when the caller is authenticated but does not own the resource.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewInternalErrorf wraps err with a caller-facing message.
func NewInternalErrorf(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeValidation:
			return fiber.StatusBadRequest
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		case CodeForbidden:
			return fiber.StatusForbidden
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeConflict:
			return fiber.StatusConflict
		}
		return fiber.StatusInternalServerError
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// CodeFor returns the machine-readable code for err.
func CodeFor(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch StatusFor(err) {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound:
		return CodeNotFound
	}
	return CodeInternal
}

// RespondWithError writes the error envelope for err with the given status.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	message := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= fiber.StatusInternalServerError && appErr == nil {
		message = "Internal server error"
	}

	return c.Status(status).JSON(ErrorResponse{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Code:       CodeFor(err),
	})
}
