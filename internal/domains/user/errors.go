package user

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrUsernameTaken = errors.New("a user with that username already exists")
	ErrAlreadyAuthor = errors.New("user is already registered as an author")
)

// Service-level (Business logic) errors
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
)
