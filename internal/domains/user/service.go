package user

import "context"

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// User Profile
	GetProfile(ctx context.Context, userID int64) (*UserDTO, error)

	// Operator functions (CLI)
	SetStaff(ctx context.Context, req PromoteRequest) (*UserDTO, error)
}
