package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/asset-management/internal/model"
)

// InboxRepo persists the moderation inbox.  Each row is an immutable
// snapshot of an asset at request time; only the availability and
// status columns change after insert, and rows are never deleted.
type InboxRepo struct {
	db *sql.DB
}

// NewInboxRepo returns a new InboxRepo bound to the given database.
func NewInboxRepo(db *sql.DB) *InboxRepo { return &InboxRepo{db: db} }

// CreateTx inserts a new inbox entry within the scope of an existing
// transaction and populates the generated ID on the provided struct.
// The caller must commit or rollback the transaction.
func (r *InboxRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.InboxEntry) error {
	const q = `INSERT INTO inbox
	           (image, asset_name, asset_type, sub_category, user_name, due_date, availability, status)
	           VALUES (?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		nullIfEmpty(e.Image), e.AssetName, e.AssetType, e.SubCategory,
		e.UserName, nullIfEmpty(e.DueDate), e.Availability, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// List returns all inbox entries in database order.  Filtering by asset
// name happens client-side.
func (r *InboxRepo) List(ctx context.Context) ([]model.InboxEntry, error) {
	const q = `SELECT id, image, asset_name, asset_type, sub_category,
	                  user_name, DATE_FORMAT(due_date, '%Y-%m-%d'), availability, status
	           FROM inbox`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.InboxEntry, 0, 16)
	for rows.Next() {
		e, err := scanInboxEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID fetches a single inbox entry.
func (r *InboxRepo) GetByID(ctx context.Context, id uint64) (model.InboxEntry, error) {
	const q = `SELECT id, image, asset_name, asset_type, sub_category,
	                  user_name, DATE_FORMAT(due_date, '%Y-%m-%d'), availability, status
	           FROM inbox WHERE id=? LIMIT 1`
	return scanInboxEntry(r.db.QueryRowContext(ctx, q, id).Scan)
}

// UpdatePartial applies a moderator's change to one entry.  Only the
// fields passed as non-nil pointers are written; the other column keeps
// its prior value.  The updated row is returned.  sql.ErrNoRows is
// returned when the id does not exist; passing no fields at all is a
// no-op read.
func (r *InboxRepo) UpdatePartial(ctx context.Context, id uint64, availability, status *string) (model.InboxEntry, error) {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if availability != nil {
		sets = append(sets, "availability=?")
		args = append(args, *availability)
	}
	if status != nil {
		sets = append(sets, "status=?")
		args = append(args, *status)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.db.ExecContext(ctx,
			"UPDATE inbox SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
		if err != nil {
			return model.InboxEntry{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return model.InboxEntry{}, err
		}
		// MySQL reports zero affected rows both for a missing id and for
		// a write of identical values, so confirm existence via the read
		// below instead of failing here.
		_ = n
	}
	return r.GetByID(ctx, id)
}

func scanInboxEntry(scan func(dest ...interface{}) error) (model.InboxEntry, error) {
	var (
		e       model.InboxEntry
		image   sql.NullString
		dueDate sql.NullString
	)
	if err := scan(&e.ID, &image, &e.AssetName, &e.AssetType, &e.SubCategory,
		&e.UserName, &dueDate, &e.Availability, &e.Status); err != nil {
		return model.InboxEntry{}, err
	}
	e.Image = image.String
	e.DueDate = dueDate.String
	return e, nil
}
