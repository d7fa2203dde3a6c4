package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_portal_backend/platform/apperr"
)

const propertyNotFoundMessage = "Property not found"

const propertyColumns = `
	p.id, p.title, p.description, p.price, p.type, p.property_type,
	p.bedrooms, p.bathrooms, p.area, p.furnished,
	p.city, p.district, p.address, p.lat, p.lng,
	p.images, p.amenities, p.approved, p.status, p.featured,
	p.owner_id, u.name, u.email, p.created_at, p.updated_at`

// Repo implements the properties repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// likedColumn returns the SELECT expression for the viewer's like flag and
// appends the viewer argument when one is present.
func likedColumn(scope Scope, args []interface{}, argIdx int) (string, []interface{}, int) {
	if scope.ViewerID == nil {
		return "FALSE", args, argIdx
	}
	col := fmt.Sprintf(
		"EXISTS(SELECT 1 FROM property_likes pl WHERE pl.property_id = p.id AND pl.user_id = $%d)", argIdx)
	return col, append(args, *scope.ViewerID), argIdx + 1
}

// visibilityClause returns the WHERE fragment enforcing who may see which
// listings. Admins see everything; owners additionally see their own pending
// listings; everyone else sees approved listings only.
func visibilityClause(scope Scope, args []interface{}, argIdx int) (string, []interface{}, int) {
	if scope.Admin {
		return "", args, argIdx
	}
	if scope.ViewerID != nil {
		clause := fmt.Sprintf("(p.approved = TRUE OR p.owner_id = $%d)", argIdx)
		return clause, append(args, *scope.ViewerID), argIdx + 1
	}
	return "p.approved = TRUE", args, argIdx
}

// filterClauses appends the WHERE fragments for the browse filters. City and
// type match as case-insensitive substrings, price bounds are inclusive,
// bedrooms is exact. An unset filter contributes no clause.
func filterClauses(filters ListFilters, clauses []string, args []interface{}, argIdx int) ([]string, []interface{}, int) {
	if filters.City != "" {
		clauses = append(clauses, fmt.Sprintf("p.city ILIKE $%d", argIdx))
		args = append(args, "%"+filters.City+"%")
		argIdx++
	}
	if filters.Type != "" {
		clauses = append(clauses, fmt.Sprintf("p.type ILIKE $%d", argIdx))
		args = append(args, "%"+filters.Type+"%")
		argIdx++
	}
	if filters.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price >= $%d", argIdx))
		args = append(args, *filters.MinPrice)
		argIdx++
	}
	if filters.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price <= $%d", argIdx))
		args = append(args, *filters.MaxPrice)
		argIdx++
	}
	if filters.Bedrooms != nil {
		clauses = append(clauses, fmt.Sprintf("p.bedrooms = $%d", argIdx))
		args = append(args, *filters.Bedrooms)
		argIdx++
	}
	return clauses, args, argIdx
}

// List lists properties visible to the scope, narrowed by filters.
func (r *Repo) List(ctx context.Context, filters ListFilters, scope Scope) ([]Property, error) {
	args := []interface{}{}
	argIdx := 1

	likedCol, args, argIdx := likedColumn(scope, args, argIdx)

	whereClauses := []string{}
	visibility, args, argIdx := visibilityClause(scope, args, argIdx)
	if visibility != "" {
		whereClauses = append(whereClauses, visibility)
	}

	whereClauses, args, _ = filterClauses(filters, whereClauses, args, argIdx)

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s AS liked
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE %s
		ORDER BY p.created_at DESC
	`, propertyColumns, likedCol, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, prop)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate properties: %w", rows.Err())
	}

	return items, nil
}

// GetByID retrieves a single property visible to the scope.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID, scope Scope) (Property, error) {
	args := []interface{}{}
	argIdx := 1

	likedCol, args, argIdx := likedColumn(scope, args, argIdx)

	whereClauses := []string{fmt.Sprintf("p.id = $%d", argIdx)}
	args = append(args, id)
	argIdx++

	visibility, args, _ := visibilityClause(scope, args, argIdx)
	if visibility != "" {
		whereClauses = append(whereClauses, visibility)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s AS liked
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE %s
	`, propertyColumns, likedCol, strings.Join(whereClauses, " AND "))

	prop, err := scanProperty(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property by id: %w", err)
	}
	return prop, nil
}

// Create inserts a new property and returns it joined with its owner.
func (r *Repo) Create(ctx context.Context, params CreatePropertyParams) (Property, error) {
	query := `
		WITH inserted AS (
			INSERT INTO properties (
				title, description, price, type, property_type,
				bedrooms, bathrooms, area, furnished,
				city, district, address, lat, lng,
				images, amenities, status, owner_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING *
		)
		SELECT
			p.id, p.title, p.description, p.price, p.type, p.property_type,
			p.bedrooms, p.bathrooms, p.area, p.furnished,
			p.city, p.district, p.address, p.lat, p.lng,
			p.images, p.amenities, p.approved, p.status, p.featured,
			p.owner_id, u.name, u.email, p.created_at, p.updated_at, FALSE AS liked
		FROM inserted p
		JOIN users u ON u.id = p.owner_id`

	prop, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.Title, params.Description, params.Price, params.Type, params.PropertyType,
		params.Bedrooms, params.Bathrooms, params.Area, params.Furnished,
		params.City, params.District, params.Address, params.Lat, params.Lng,
		params.Images, params.Amenities, params.Status, params.OwnerID,
	))
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return prop, nil
}

// Exists reports whether a property row exists, regardless of approval.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check property exists: %w", err)
	}
	return exists, nil
}

// SearchPage lists properties with text search, status narrowing and
// pagination. Scope is applied like everywhere else, so the method also
// serves non-admin callers if ever needed.
func (r *Repo) SearchPage(ctx context.Context, params AdminSearch, scope Scope) ([]Property, int, error) {
	args := []interface{}{}
	argIdx := 1

	whereClauses := []string{}
	visibility, args, argIdx := visibilityClause(scope, args, argIdx)
	if visibility != "" {
		whereClauses = append(whereClauses, visibility)
	}

	if params.Search != "" {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d OR p.city ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	switch params.Status {
	case "approved":
		whereClauses = append(whereClauses, "p.approved = TRUE")
	case "pending":
		whereClauses = append(whereClauses, "p.approved = FALSE")
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties p WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s, FALSE AS liked
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, propertyColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, prop)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate properties: %w", rows.Err())
	}

	return items, total, nil
}

// Approve marks a property approved and returns the updated row.
func (r *Repo) Approve(ctx context.Context, id uuid.UUID) (Property, error) {
	query := `
		WITH updated AS (
			UPDATE properties
			SET approved = TRUE, status = 'approved', updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT
			p.id, p.title, p.description, p.price, p.type, p.property_type,
			p.bedrooms, p.bathrooms, p.area, p.furnished,
			p.city, p.district, p.address, p.lat, p.lng,
			p.images, p.amenities, p.approved, p.status, p.featured,
			p.owner_id, u.name, u.email, p.created_at, p.updated_at, FALSE AS liked
		FROM updated p
		JOIN users u ON u.id = p.owner_id`

	prop, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("approve property: %w", err)
	}
	return prop, nil
}

// Delete removes a property. Likes cascade at the database level.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMessage)
	}
	return nil
}

// scanProperty scans the propertyColumns projection plus the liked flag.
func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Type, &p.PropertyType,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Furnished,
		&p.City, &p.District, &p.Address, &p.Lat, &p.Lng,
		&p.Images, &p.Amenities, &p.Approved, &p.Status, &p.Featured,
		&p.OwnerID, &p.OwnerName, &p.OwnerEmail, &p.CreatedAt, &p.UpdatedAt,
		&p.LikedByViewer,
	)
	return p, err
}
