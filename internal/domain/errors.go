package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable code carried by every domain error.
type ErrorCode string

const (
	CodeFetchError     ErrorCode = "FETCH_ERROR"
	CodeSaveError      ErrorCode = "SAVE_ERROR"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeFolderNotEmpty ErrorCode = "FOLDER_NOT_EMPTY"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeValidation     ErrorCode = "VALIDATION"
	CodeInternal       ErrorCode = "INTERNAL"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrFetch          = errors.New("storage fetch failed")
	ErrSave           = errors.New("storage save failed")
	ErrNotFound       = errors.New("not found")
	ErrFolderNotEmpty = errors.New("folder not empty")
	ErrConflict       = errors.New("already exists")
	ErrValidation     = errors.New("validation failed")
)

// StorageError wraps a failed key-value read or write.
type StorageError struct {
	Code ErrorCode // CodeFetchError or CodeSaveError
	Key  string
	Err  error
}

func (e *StorageError) Error() string {
	op := "fetch"
	if e.Code == CodeSaveError {
		op = "save"
	}
	return fmt.Sprintf("%s %q: %v", op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrFetch / ErrSave
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrFetch:
		return e.Code == CodeFetchError
	case ErrSave:
		return e.Code == CodeSaveError
	}
	return false
}

// NotFoundError indicates a single-entity operation targeted a missing id.
type NotFoundError struct {
	ResourceType string // "file" or "folder"
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.ResourceType, e.ResourceID, ErrNotFound)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FolderNotEmptyError is returned by a non-cascading delete of a folder
// that still has child folders or files.
type FolderNotEmptyError struct {
	FolderID    string
	FolderCount int
	FileCount   int
}

func (e *FolderNotEmptyError) Error() string {
	return fmt.Sprintf("folder %s contains %d folder(s) and %d file(s): %s",
		e.FolderID, e.FolderCount, e.FileCount, ErrFolderNotEmpty)
}

func (e *FolderNotEmptyError) StatusCode() int { return http.StatusConflict }

func (e *FolderNotEmptyError) Is(target error) bool { return target == ErrFolderNotEmpty }

// ConflictError represents a sibling-name collision with details about
// the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // "file" or "folder"
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError carries one or more newline-joined validation messages.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the machine-readable code for err, or CodeInternal.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetch):
		return CodeFetchError
	case errors.Is(err, ErrSave):
		return CodeSaveError
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrFolderNotEmpty):
		return CodeFolderNotEmpty
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrValidation):
		return CodeValidation
	default:
		return CodeInternal
	}
}

// StatusOf returns the HTTP status for err, preferring HTTPError in the chain.
func StatusOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeFolderNotEmpty:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
