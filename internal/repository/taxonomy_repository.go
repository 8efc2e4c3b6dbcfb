package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/asset-management/internal/model"
)

// TaxonomyRepo reads the static reference tables: roles, types and
// subcategories.  These are seeded at install time and never mutated
// through the API, so the repo exposes only list operations.
type TaxonomyRepo struct {
	db *sql.DB
}

// NewTaxonomyRepo constructs a TaxonomyRepo given a DB handle.
func NewTaxonomyRepo(db *sql.DB) *TaxonomyRepo {
	return &TaxonomyRepo{db: db}
}

// ListRoles returns all seeded roles ordered by id.
func (r *TaxonomyRepo) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT role_id, role_name FROM roles ORDER BY role_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Role, 0, 3)
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// ListTypes returns all asset types ordered by name.
func (r *TaxonomyRepo) ListTypes(ctx context.Context) ([]model.Type, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT type_id, type_name FROM types ORDER BY type_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Type, 0, 8)
	for rows.Next() {
		var t model.Type
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListSubcategoriesByType returns the subcategories belonging to one
// type, ordered by name.  The asset form reloads this list whenever the
// selected type changes.
func (r *TaxonomyRepo) ListSubcategoriesByType(ctx context.Context, typeID uint64) ([]model.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT subcategory_id, type_id, subcategory_name FROM subcategories WHERE type_id=? ORDER BY subcategory_name",
		typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Subcategory, 0, 8)
	for rows.Next() {
		var s model.Subcategory
		if err := rows.Scan(&s.ID, &s.TypeID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
