package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, role, phone, address, profile_image, created_at, updated_at`

// Repo implements the admin repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admin repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SearchUsers lists users with text search, role narrowing and pagination.
func (r *Repo) SearchUsers(ctx context.Context, params UserSearch) ([]User, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Role != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	items, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountUsers counts all users.
func (r *Repo) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM users", "count users")
}

// CountProperties counts all properties.
func (r *Repo) CountProperties(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM properties", "count properties")
}

// CountPropertiesByApproval counts properties by approval flag.
func (r *Repo) CountPropertiesByApproval(ctx context.Context, approved bool) (int, error) {
	query := "SELECT COUNT(*) FROM properties WHERE approved = $1"
	var total int
	if err := r.pool.QueryRow(ctx, query, approved).Scan(&total); err != nil {
		return 0, fmt.Errorf("count properties by approval: %w", err)
	}
	return total, nil
}

// CountLikes counts all like relations.
func (r *Repo) CountLikes(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM property_likes", "count likes")
}

// RecentUsers returns the most recently registered users.
func (r *Repo) RecentUsers(ctx context.Context, limit int) ([]User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`, userColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// RecentProperties returns the most recently listed properties.
func (r *Repo) RecentProperties(ctx context.Context, limit int) ([]PropertySummary, error) {
	query := `
		SELECT p.id, p.title, p.city, p.price, p.approved, p.status, u.name, p.created_at
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent properties: %w", err)
	}
	defer rows.Close()

	items := make([]PropertySummary, 0)
	for rows.Next() {
		var p PropertySummary
		if err := rows.Scan(&p.ID, &p.Title, &p.City, &p.Price, &p.Approved, &p.Status, &p.OwnerName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent property: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate recent properties: %w", rows.Err())
	}
	return items, nil
}

func (r *Repo) count(ctx context.Context, query, op string) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	items := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.Address, &u.ProfileImage,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}
	return items, nil
}
