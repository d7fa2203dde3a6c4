package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"estate_portal_backend/internal/auth/password"
	"estate_portal_backend/internal/auth/repository"
	"estate_portal_backend/internal/auth/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
)

type testConfig struct{}

func (testConfig) GetJWTSecret() string             { return "test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type fakeRepo struct {
	byEmail map[string]repository.User
	byID    map[uuid.UUID]repository.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]repository.User),
		byID:    make(map[uuid.UUID]repository.User),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, params repository.CreateUserParams) (repository.User, error) {
	if _, exists := f.byEmail[params.Email]; exists {
		return repository.User{}, apperr.BadRequest("User already exists")
	}
	user := repository.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Phone:        params.Phone,
		Address:      params.Address,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("User not found")
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return repository.User{}, apperr.NotFound("User not found")
	}
	return user, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, params repository.UpdateProfileParams) (repository.User, error) {
	user, ok := f.byID[params.ID]
	if !ok {
		return repository.User{}, apperr.NotFound("User not found")
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Phone != nil {
		user.Phone = params.Phone
	}
	if params.Address != nil {
		user.Address = params.Address
	}
	if params.ProfileImage != nil {
		user.ProfileImage = params.ProfileImage
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return user, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo *fakeRepo) *Service {
	return New(repo, testConfig{}, logger.New("development"))
}

func TestRegister_DefaultsRoleAndNormalizesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     "Ada",
		Email:    "  Ada@Example.COM ",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Role != "user" {
		t.Fatalf("expected default role user, got %q", resp.User.Role)
	}
	if resp.User.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", resp.User.Email)
	}
	if resp.Token == "" {
		t.Fatalf("expected a signed token on register")
	}

	stored := repo.byEmail["ada@example.com"]
	if stored.PasswordHash == "hunter22" {
		t.Fatalf("password must be stored hashed")
	}
	if err := password.Compare(stored.PasswordHash, "hunter22"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, transport.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, wrongErr := svc.Login(ctx, transport.LoginRequest{Email: "ada@example.com", Password: "wrong"})

	if unknownErr == nil || wrongErr == nil {
		t.Fatalf("expected both failures, got unknown=%v wrong=%v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure messages must be indistinguishable: %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
	var domainErr *apperr.Error
	if !errors.As(unknownErr, &domainErr) || domainErr.Kind != apperr.KindBadRequest {
		t.Fatalf("expected BadRequest kind, got %v", unknownErr)
	}
}

func TestLogin_ValidCredentialsIssueToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, transport.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(ctx, transport.LoginRequest{Email: "ADA@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token on login")
	}
}

func TestRegister_DuplicateEmailFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	req := transport.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}
