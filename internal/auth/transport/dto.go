package transport

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user owner"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Address  string `json:"address" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=255"`
	ProfileImage *string `json:"profileImage,omitempty" validate:"omitempty,max=500"`
}

// UserResponse is the wire representation of a user. The credential hash is
// never part of it.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
