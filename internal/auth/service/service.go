package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"estate_portal_backend/internal/auth/password"
	"estate_portal_backend/internal/auth/repository"
	"estate_portal_backend/internal/auth/token"
	"estate_portal_backend/internal/auth/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/phone"
)

const defaultRole = "user"

// Config narrows the settings the auth service needs.
type Config interface {
	GetJWTSecret() string
	GetAccessTokenTTL() time.Duration
}

// Service provides registration, login, and profile management.
type Service struct {
	repo repository.Repository
	cfg  Config
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a user and issues an access token.
// The admin role cannot be self-assigned; only user and owner pass validation.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = defaultRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        normalizedPhonePtr(req.Phone),
		Address:      optionalText(req.Address),
	})
	if err != nil {
		s.log.AuthEvent("register", email, false, err.Error())
		return transport.AuthResponse{}, err
	}

	signed, err := token.SignAccess(user.ID, user.Role, s.cfg.GetAccessTokenTTL(), s.cfg.GetJWTSecret())
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("register", user.Email, true, "")
	return transport.AuthResponse{Token: signed, User: toUserResponse(user)}, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return transport.AuthResponse{}, apperr.BadRequest("Invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return transport.AuthResponse{}, apperr.BadRequest("Invalid credentials")
	}

	signed, err := token.SignAccess(user.ID, user.Role, s.cfg.GetAccessTokenTTL(), s.cfg.GetJWTSecret())
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("login", user.Email, true, "")
	return transport.AuthResponse{Token: signed, User: toUserResponse(user)}, nil
}

// GetMe returns the profile of the authenticated user.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// UpdateMe applies a partial profile update for the authenticated user.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, req transport.UpdateProfileRequest) (transport.UserResponse, error) {
	var email *string
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		email = &normalized
	}

	var phoneNumber *string
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		phoneNumber = &normalized
	}

	user, err := s.repo.UpdateProfile(ctx, repository.UpdateProfileParams{
		ID:           userID,
		Name:         req.Name,
		Email:        email,
		Phone:        phoneNumber,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Phone:        user.Phone,
		Address:      user.Address,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

func normalizedPhonePtr(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	normalized := phone.NormalizeE164(trimmed)
	return &normalized
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
