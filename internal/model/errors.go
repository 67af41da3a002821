package model

import "fmt"

// AppError is the closed set of errors a screen can hold in its state.
// The variants are NotFoundError, PermissionDeniedError, UnknownError and
// TimeoutError; consumers switch over them exhaustively.
type AppError interface {
	error
	appError()
}

// NotFoundError means the collaborator reported no app for the identifier
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("app not found: %s", e.ID) }
func (*NotFoundError) appError()       {}

// PermissionDeniedError means the platform refused access to a resource
type PermissionDeniedError struct {
	Resource string
	Details  string
}

func (e *PermissionDeniedError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("permission denied: %s", e.Resource)
	}
	return fmt.Sprintf("permission denied: %s: %s", e.Resource, e.Details)
}
func (*PermissionDeniedError) appError() {}

// UnknownError wraps any failure that is neither a permission nor a not-found signal
type UnknownError struct {
	Message string
	Cause   error
}

func (e *UnknownError) Error() string { return e.Message }
func (e *UnknownError) Unwrap() error { return e.Cause }
func (*UnknownError) appError()       {}

// TimeoutError is reserved; no current path produces it
type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("timed out: %s", e.Operation) }
func (*TimeoutError) appError()       {}
