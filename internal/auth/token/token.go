// Package token signs and inspects the access tokens issued at login.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// SignAccess issues an HS256 access token carrying the user's ID and role.
func SignAccess(userID uuid.UUID, role string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"type": accessTokenType,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}
