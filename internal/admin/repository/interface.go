package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the admin view of a user account. The credential hash is never
// selected into this struct.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         string
	Phone        *string
	Address      *string
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSearch drives the paginated admin user listing.
type UserSearch struct {
	Search string
	Role   string
	Limit  int
	Offset int
}

// PropertySummary is the compact property row shown on the dashboard.
type PropertySummary struct {
	ID        uuid.UUID
	Title     string
	City      string
	Price     int64
	Approved  bool
	Status    string
	OwnerName string
	CreatedAt time.Time
}

// Repository defines the admin read operations.
type Repository interface {
	SearchUsers(ctx context.Context, params UserSearch) ([]User, int, error)
	CountUsers(ctx context.Context) (int, error)
	CountProperties(ctx context.Context) (int, error)
	CountPropertiesByApproval(ctx context.Context, approved bool) (int, error)
	CountLikes(ctx context.Context) (int, error)
	RecentUsers(ctx context.Context, limit int) ([]User, error)
	RecentProperties(ctx context.Context, limit int) ([]PropertySummary, error)
}
