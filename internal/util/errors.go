package util

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRecordNotFound   = errors.New("record not found")
	ErrValidation       = errors.New("validation error")
	ErrStorage          = errors.New("object storage error")
	ErrStore            = errors.New("record store error")
)

// AppError carries the failed operation and a displayable message next to its kind.
type AppError struct {
	Op      string // e.g. "profile.Rename"
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *AppError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func NewError(op string, kind error, message string) *AppError {
	return &AppError{Op: op, Kind: kind, Message: message}
}

func WrapError(op string, kind error, message string, err error) *AppError {
	return &AppError{Op: op, Kind: kind, Message: message, Err: err}
}

// Message returns the displayable part of err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
