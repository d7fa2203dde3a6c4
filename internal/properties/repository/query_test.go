package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"estate_portal_backend/platform/apperr"
)

func TestVisibilityClause_Anonymous(t *testing.T) {
	clause, args, argIdx := visibilityClause(Scope{}, []interface{}{}, 1)
	if clause != "p.approved = TRUE" {
		t.Fatalf("expected approved-only clause for anonymous, got %q", clause)
	}
	if len(args) != 0 || argIdx != 1 {
		t.Fatalf("anonymous scope must not consume arguments: args=%v argIdx=%d", args, argIdx)
	}
}

func TestVisibilityClause_ViewerSeesOwnPending(t *testing.T) {
	viewer := uuid.New()
	clause, args, argIdx := visibilityClause(Scope{ViewerID: &viewer}, []interface{}{}, 1)
	if clause != "(p.approved = TRUE OR p.owner_id = $1)" {
		t.Fatalf("unexpected viewer clause: %q", clause)
	}
	if len(args) != 1 || args[0] != viewer {
		t.Fatalf("expected viewer id bound as argument, got %v", args)
	}
	if argIdx != 2 {
		t.Fatalf("expected next arg index 2, got %d", argIdx)
	}
}

func TestVisibilityClause_AdminUnrestricted(t *testing.T) {
	clause, args, argIdx := visibilityClause(Scope{Admin: true}, []interface{}{}, 1)
	if clause != "" {
		t.Fatalf("expected no clause for admin, got %q", clause)
	}
	if len(args) != 0 || argIdx != 1 {
		t.Fatalf("admin scope must not consume arguments: args=%v argIdx=%d", args, argIdx)
	}
}

func TestFilterClauses_CityAndTypeMatchSubstringsCaseInsensitively(t *testing.T) {
	clauses, args, argIdx := filterClauses(ListFilters{City: "Austin", Type: "Sale"}, []string{}, []interface{}{}, 1)
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %v", clauses)
	}
	if clauses[0] != "p.city ILIKE $1" {
		t.Fatalf("unexpected city clause: %q", clauses[0])
	}
	if clauses[1] != "p.type ILIKE $2" {
		t.Fatalf("expected type to match as ILIKE substring, got %q", clauses[1])
	}
	if args[0] != "%Austin%" || args[1] != "%Sale%" {
		t.Fatalf("expected wrapped pattern arguments, got %v", args)
	}
	if argIdx != 3 {
		t.Fatalf("expected next arg index 3, got %d", argIdx)
	}
}

func TestFilterClauses_NumericBoundsAndBedrooms(t *testing.T) {
	minPrice := int64(1000)
	maxPrice := int64(5000)
	bedrooms := 3
	clauses, args, _ := filterClauses(ListFilters{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Bedrooms: &bedrooms,
	}, []string{}, []interface{}{}, 1)
	if len(clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %v", clauses)
	}
	if clauses[0] != "p.price >= $1" || clauses[1] != "p.price <= $2" || clauses[2] != "p.bedrooms = $3" {
		t.Fatalf("unexpected clauses: %v", clauses)
	}
	if args[0] != minPrice || args[1] != maxPrice || args[2] != bedrooms {
		t.Fatalf("unexpected arguments: %v", args)
	}
}

func TestFilterClauses_EmptyFiltersContributeNothing(t *testing.T) {
	clauses, args, argIdx := filterClauses(ListFilters{}, []string{}, []interface{}{}, 4)
	if len(clauses) != 0 || len(args) != 0 || argIdx != 4 {
		t.Fatalf("empty filters must contribute nothing: clauses=%v args=%v argIdx=%d", clauses, args, argIdx)
	}
}

func TestLikedColumn_AnonymousIsConstantFalse(t *testing.T) {
	col, args, argIdx := likedColumn(Scope{}, []interface{}{}, 1)
	if col != "FALSE" {
		t.Fatalf("expected constant FALSE for anonymous viewer, got %q", col)
	}
	if len(args) != 0 || argIdx != 1 {
		t.Fatalf("anonymous liked column must not consume arguments")
	}
}

func TestLikedColumn_ViewerBindsSubquery(t *testing.T) {
	viewer := uuid.New()
	col, args, argIdx := likedColumn(Scope{ViewerID: &viewer}, []interface{}{}, 1)
	want := "EXISTS(SELECT 1 FROM property_likes pl WHERE pl.property_id = p.id AND pl.user_id = $1)"
	if col != want {
		t.Fatalf("unexpected liked column: %q", col)
	}
	if len(args) != 1 || args[0] != viewer {
		t.Fatalf("expected viewer id bound as argument, got %v", args)
	}
	if argIdx != 2 {
		t.Fatalf("expected next arg index 2, got %d", argIdx)
	}
}

func TestLikedColumn_AdminViewerStillBindsSubquery(t *testing.T) {
	viewer := uuid.New()
	col, args, _ := likedColumn(Scope{ViewerID: &viewer, Admin: true}, []interface{}{}, 1)
	if col == "FALSE" {
		t.Fatalf("admin viewers must still resolve their own likes, got constant FALSE")
	}
	if len(args) != 1 || args[0] != viewer {
		t.Fatalf("expected viewer id bound as argument, got %v", args)
	}
}

func TestVisibilityClause_AdminWithViewerStaysUnrestricted(t *testing.T) {
	viewer := uuid.New()
	clause, args, argIdx := visibilityClause(Scope{ViewerID: &viewer, Admin: true}, []interface{}{}, 1)
	if clause != "" {
		t.Fatalf("admin scope must stay unrestricted even with a viewer id, got %q", clause)
	}
	if len(args) != 0 || argIdx != 1 {
		t.Fatalf("admin visibility must not consume arguments: args=%v argIdx=%d", args, argIdx)
	}
}

func TestLikeInsertError_ForeignKeyViolationIsNotFound(t *testing.T) {
	err := likeInsertError(&pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "property_likes_property_id_fkey"})
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not-found kind, got %v", domainErr.Kind)
	}
}

func TestLikeInsertError_OtherFailuresStayInternal(t *testing.T) {
	cause := errors.New("connection reset")
	err := likeInsertError(cause)
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		t.Fatalf("unexpected domain error for infrastructure failure: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
