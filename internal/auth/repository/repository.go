package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_portal_backend/platform/apperr"
)

const userNotFoundMessage = "User not found"

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

const userColumns = `id, name, email, password_hash, role, phone, address, profile_image, created_at, updated_at`

// Repo implements the user repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateUser inserts a new user. A duplicate email surfaces as a validation
// error so registration reports it without leaking constraint names.
func (r *Repo) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.PasswordHash, params.Role, params.Phone, params.Address,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.BadRequest("User already exists")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repo) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// UpdateProfile updates a user's profile fields; nil params leave the column unchanged.
func (r *Repo) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			profile_image = COALESCE($6, profile_image),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.Address, params.ProfileImage,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email already in use")
		}
		return User{}, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Phone,
		&user.Address,
		&user.ProfileImage,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
