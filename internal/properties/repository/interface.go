package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Property is the persisted listing joined with its owner's public fields.
// LikedByViewer is computed against the viewer passed in the query scope and
// is false for anonymous viewers.
type Property struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Price         int64
	Type          string
	PropertyType  string
	Bedrooms      int
	Bathrooms     int
	Area          int
	Furnished     bool
	City          string
	District      string
	Address       string
	Lat           *float64
	Lng           *float64
	Images        []string
	Amenities     []string
	Approved      bool
	Status        string
	Featured      bool
	OwnerID       uuid.UUID
	OwnerName     string
	OwnerEmail    string
	LikedByViewer bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Liker is a user who liked a property, restricted to public fields.
type Liker struct {
	Name  string
	Email string
}

// Scope restricts which properties a query may return. Anonymous viewers see
// approved listings only; authenticated viewers additionally see their own;
// admins see everything. Handlers derive it from the resolved identity, so
// caller-supplied filter parameters can never widen it.
type Scope struct {
	ViewerID *uuid.UUID
	Admin    bool
}

// ListFilters are the already-validated public browse filters. A nil/empty
// field contributes no predicate.
type ListFilters struct {
	City     string
	Type     string
	MinPrice *int64
	MaxPrice *int64
	Bedrooms *int
}

// AdminSearch drives the paginated admin listing screen. Status narrows on
// the approval flag: "approved", "pending", or empty for no narrowing.
type AdminSearch struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// CreatePropertyParams carries the fields of a new listing.
type CreatePropertyParams struct {
	Title        string
	Description  string
	Price        int64
	Type         string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Area         int
	Furnished    bool
	City         string
	District     string
	Address      string
	Lat          *float64
	Lng          *float64
	Images       []string
	Amenities    []string
	Status       string
	OwnerID      uuid.UUID
}

// Repository defines persistence operations for properties and likes.
type Repository interface {
	List(ctx context.Context, filters ListFilters, scope Scope) ([]Property, error)
	GetByID(ctx context.Context, id uuid.UUID, scope Scope) (Property, error)
	Create(ctx context.Context, params CreatePropertyParams) (Property, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	SearchPage(ctx context.Context, params AdminSearch, scope Scope) ([]Property, int, error)
	Approve(ctx context.Context, id uuid.UUID) (Property, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ToggleLike(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListLikers(ctx context.Context, propertyID uuid.UUID) ([]Liker, error)
	ListLikedByUser(ctx context.Context, userID uuid.UUID) ([]Property, error)
}
