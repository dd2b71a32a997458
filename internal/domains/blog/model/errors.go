package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeConflict   = "CONFLICT"
)

// Repository-level errors
var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrAuthorNotFound  = errors.New("blog author not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyAuthor   = errors.New("user is already a blog author")
	ErrInvalidInput    = errors.New("invalid input")
)

// BlogError custom error type
type BlogError struct {
	Code    string
	Message string
	Err     error
	Details interface{}
}

func (e *BlogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BlogError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNotFoundError(err error) *BlogError {
	return &BlogError{
		Code:    ErrCodeNotFound,
		Message: notFoundMessage(err),
		Err:     err,
	}
}

func NewValidationError(details interface{}) *BlogError {
	return &BlogError{
		Code:    ErrCodeValidation,
		Message: "Invalid input",
		Err:     ErrInvalidInput,
		Details: details,
	}
}

func NewConflictError(err error) *BlogError {
	return &BlogError{
		Code:    ErrCodeConflict,
		Message: "Conflict",
		Err:     err,
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, ErrBlogNotFound):
		return "Blog not found"
	case errors.Is(err, ErrAuthorNotFound):
		return "Blogger not found"
	case errors.Is(err, ErrCommentNotFound):
		return "Comment not found"
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	default:
		return "Not found"
	}
}

// IsNotFound cho biết err là một trong các lỗi not found của domain
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBlogNotFound) ||
		errors.Is(err, ErrAuthorNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
