package filevault_errors

import "errors"

// Common errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTooLarge       = errors.New("file too large")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotPreviewable = errors.New("preview not supported for this file type")
	ErrStorage        = errors.New("object storage failure")
	ErrRateLimited    = errors.New("rate limited")
)
