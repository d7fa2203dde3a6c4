package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the persisted user record. PasswordHash never leaves this layer
// except for credential comparison in the service.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        *string
	Address      *string
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserParams carries the fields required to register a user.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        *string
	Address      *string
}

// UpdateProfileParams carries the optional profile fields; nil means unchanged.
type UpdateProfileParams struct {
	ID           uuid.UUID
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	ProfileImage *string
}

// Repository defines persistence operations for users.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
}
