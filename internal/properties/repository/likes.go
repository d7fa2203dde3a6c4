package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"estate_portal_backend/platform/apperr"
)

const foreignKeyViolation = "23503"

// likeInsertError maps a failed like insert. A foreign-key violation means
// the property vanished between the caller's existence check and the write,
// which is a missing property, not a server fault.
func likeInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return apperr.NotFound(propertyNotFoundMessage)
	}
	return fmt.Errorf("insert like: %w", err)
}

// ToggleLike flips the like relation between a user and a property and
// returns the resulting state. A single relation row backs both the
// property's liker list and the user's liked list, so the two views cannot
// drift apart. The insert-first strategy makes concurrent toggles land on a
// consistent state: ON CONFLICT absorbs the race, and the loser's DELETE
// removes the row it failed to insert.
func (r *Repo) ToggleLike(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	insert := `
		INSERT INTO property_likes (user_id, property_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	result, err := r.pool.Exec(ctx, insert, userID, propertyID)
	if err != nil {
		return false, likeInsertError(err)
	}
	if result.RowsAffected() == 1 {
		return true, nil
	}

	del := `DELETE FROM property_likes WHERE user_id = $1 AND property_id = $2`
	if _, err := r.pool.Exec(ctx, del, userID, propertyID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return false, nil
}

// ListLikers lists the users who liked a property, newest first.
func (r *Repo) ListLikers(ctx context.Context, propertyID uuid.UUID) ([]Liker, error) {
	query := `
		SELECT u.name, u.email
		FROM property_likes pl
		JOIN users u ON u.id = pl.user_id
		WHERE pl.property_id = $1
		ORDER BY pl.created_at DESC`

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	defer rows.Close()

	items := make([]Liker, 0)
	for rows.Next() {
		var liker Liker
		if err := rows.Scan(&liker.Name, &liker.Email); err != nil {
			return nil, fmt.Errorf("scan liker: %w", err)
		}
		items = append(items, liker)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate likers: %w", rows.Err())
	}

	return items, nil
}

// ListLikedByUser lists the properties a user has liked, newest like first.
// The rows come from the same relation the likers list reads, and they carry
// the liked flag as TRUE by construction.
func (r *Repo) ListLikedByUser(ctx context.Context, userID uuid.UUID) ([]Property, error) {
	query := fmt.Sprintf(`
		SELECT %s, TRUE AS liked
		FROM property_likes pl
		JOIN properties p ON p.id = pl.property_id
		JOIN users u ON u.id = p.owner_id
		WHERE pl.user_id = $1
		ORDER BY pl.created_at DESC
	`, propertyColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan liked property: %w", err)
		}
		items = append(items, prop)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate liked properties: %w", rows.Err())
	}

	return items, nil
}
