// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the resolved viewer of the current request.
// This interface abstracts identity extraction from the web framework,
// allowing handlers and services to reason about the viewer without
// depending on Gin. An anonymous viewer reports IsAuthenticated() == false.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Role returns the user's role (user, owner, or admin).
	Role() string
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	role          string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Role() string {
	return i.role
}

func (i *identity) HasRole(role string) bool {
	return i.authenticated && i.role == role
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an anonymous identity if no user info is present, which is the
// normal case on optional-auth routes.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	var role string
	if value, ok := c.Get(ContextRoleKey); ok {
		role, _ = value.(string)
	}

	return &identity{
		userID:        uid,
		role:          role,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return nil
	}
	return id
}
