package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/asset-management/internal/model"
)

// AssetRepo provides persistence for the asset catalog.  Listing joins
// the reference tables so callers receive display-ready names; the
// dashboard aggregates are plain GROUP BY projections recomputed per
// request.
type AssetRepo struct {
	db *sql.DB
}

// NewAssetRepo returns a new AssetRepo bound to the given database.
func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning this repo and the inbox repo.
func (r *AssetRepo) DB() *sql.DB { return r.db }

// List returns every asset joined with its type, subcategory and owner
// names.  Date columns are formatted to YYYY-MM-DD inside the query so
// the rows scan directly into strings.
func (r *AssetRepo) List(ctx context.Context) ([]model.AssetDetail, error) {
	const q = `SELECT a.asset_id, a.asset_name, a.unit_price,
	                  DATE_FORMAT(a.due_date, '%Y-%m-%d'),
	                  DATE_FORMAT(a.assigned_date, '%Y-%m-%d'),
	                  DATE_FORMAT(a.purchase_date, '%Y-%m-%d'),
	                  a.description, u.username, t.type_name, s.subcategory_name, a.image
	           FROM assets a
	           JOIN users u ON a.username = u.username
	           JOIN types t ON a.type_id = t.type_id
	           JOIN subcategories s ON a.subcategory_id = s.subcategory_id
	           ORDER BY a.asset_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AssetDetail, 0, 32)
	for rows.Next() {
		d, err := scanAssetDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByOwner returns the assets owned by one user for the "My Assets"
// view.  The full result set is transferred; the catalog is small
// enough that pagination has never been needed.
func (r *AssetRepo) ListByOwner(ctx context.Context, username string) ([]model.AssetDetail, error) {
	const q = `SELECT a.asset_id, a.asset_name, a.unit_price,
	                  DATE_FORMAT(a.due_date, '%Y-%m-%d'),
	                  DATE_FORMAT(a.assigned_date, '%Y-%m-%d'),
	                  DATE_FORMAT(a.purchase_date, '%Y-%m-%d'),
	                  a.description, a.username, t.type_name, s.subcategory_name, a.image
	           FROM assets a
	           JOIN types t ON a.type_id = t.type_id
	           JOIN subcategories s ON a.subcategory_id = s.subcategory_id
	           WHERE a.username = ?
	           ORDER BY a.asset_id`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AssetDetail, 0, 8)
	for rows.Next() {
		d, err := scanAssetDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a new asset row and populates the generated ID on the
// provided struct.  Empty date strings are stored as NULL.
func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) error {
	const q = `INSERT INTO assets
	           (asset_name, type_id, subcategory_id, username, unit_price,
	            due_date, assigned_date, purchase_date, description, image)
	           VALUES (?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.TypeID, a.SubcategoryID, a.Username, a.UnitPrice,
		nullIfEmpty(a.DueDate), nullIfEmpty(a.AssignedDate), nullIfEmpty(a.PurchaseDate),
		a.Description, nullIfEmpty(a.Image))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Delete hard-deletes an asset by id.  sql.ErrNoRows is returned when
// no row was affected.
func (r *AssetRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM assets WHERE asset_id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssetSnapshot carries the display fields copied into an inbox entry
// when an asset is requested: the joined type and subcategory names
// plus the asset's own name and image path.
type AssetSnapshot struct {
	Name        string
	TypeName    string
	SubCategory string
	Image       string
}

// SnapshotTx loads the request-time display fields of one asset inside
// an existing transaction.  Running the lookup and the inbox insert in
// the same transaction closes the window in which a concurrent delete
// could let a request through for a vanished asset.  sql.ErrNoRows is
// returned when the asset does not exist.
func (r *AssetRepo) SnapshotTx(ctx context.Context, tx *sql.Tx, assetID uint64) (AssetSnapshot, error) {
	const q = `SELECT a.asset_name, t.type_name, s.subcategory_name, a.image
	           FROM assets a
	           JOIN types t ON a.type_id = t.type_id
	           JOIN subcategories s ON a.subcategory_id = s.subcategory_id
	           WHERE a.asset_id = ?`
	var (
		snap  AssetSnapshot
		image sql.NullString
	)
	err := tx.QueryRowContext(ctx, q, assetID).Scan(&snap.Name, &snap.TypeName, &snap.SubCategory, &image)
	if err != nil {
		return AssetSnapshot{}, err
	}
	snap.Image = image.String
	return snap, nil
}

// CountBySubcategory groups the catalog by subcategory name.
func (r *AssetRepo) CountBySubcategory(ctx context.Context) ([]model.CountBucket, error) {
	const q = `SELECT s.subcategory_name, COUNT(a.asset_id)
	           FROM assets a
	           JOIN subcategories s ON a.subcategory_id = s.subcategory_id
	           GROUP BY s.subcategory_name`
	return r.countBuckets(ctx, q)
}

// CountByOwner groups the catalog by owning username.
func (r *AssetRepo) CountByOwner(ctx context.Context) ([]model.CountBucket, error) {
	const q = `SELECT username, COUNT(*) FROM assets GROUP BY username`
	return r.countBuckets(ctx, q)
}

// CountByAssignedMonth groups assets by the calendar year-month of
// their assigned date, ascending.  Rows without an assigned date are
// excluded, so this projection may sum to less than the catalog total.
func (r *AssetRepo) CountByAssignedMonth(ctx context.Context) ([]model.MonthBucket, error) {
	const q = `SELECT DATE_FORMAT(assigned_date, '%Y-%m') AS month, COUNT(*)
	           FROM assets
	           WHERE assigned_date IS NOT NULL
	           GROUP BY month
	           ORDER BY month ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MonthBucket, 0, 12)
	for rows.Next() {
		var b model.MonthBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *AssetRepo) countBuckets(ctx context.Context, q string) ([]model.CountBucket, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CountBucket, 0, 8)
	for rows.Next() {
		var b model.CountBucket
		if err := rows.Scan(&b.Name, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// scanAssetDetail scans one joined asset row.  The date and image
// columns are nullable; NULLs become empty strings.
func scanAssetDetail(rows *sql.Rows) (model.AssetDetail, error) {
	var (
		d                   model.AssetDetail
		due, assigned, purc sql.NullString
		image               sql.NullString
	)
	if err := rows.Scan(&d.ID, &d.Name, &d.UnitPrice, &due, &assigned, &purc,
		&d.Description, &d.UserName, &d.TypeName, &d.SubCategoryName, &image); err != nil {
		return model.AssetDetail{}, err
	}
	d.DueDate = due.String
	d.AssignedDate = assigned.String
	d.DateOfPurchase = purc.String
	d.Image = image.String
	return d, nil
}

// nullIfEmpty maps empty strings to SQL NULL for nullable columns.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
