package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/asset-management/internal/model"
)

var inboxCols = []string{
	"id", "image", "asset_name", "asset_type", "sub_category",
	"user_name", "due_date", "availability", "status",
}

func newMockInboxRepo(t *testing.T) (*InboxRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewInboxRepo(db), mock, func() { db.Close() }
}

func TestInboxCreateTxPopulatesID(t *testing.T) {
	repo, mock, done := newMockInboxRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO inbox").
		WithArgs("/images/1.png", "Laptop-1", "Electronics", "Laptops",
			"alice", "2025-01-15", model.AvailabilityAvailable, model.StatusApproved).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	tx, err := repo.db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	e := model.InboxEntry{
		Image: "/images/1.png", AssetName: "Laptop-1", AssetType: "Electronics",
		SubCategory: "Laptops", UserName: "alice", DueDate: "2025-01-15",
		Availability: model.AvailabilityAvailable, Status: model.StatusApproved,
	}
	require.NoError(t, repo.CreateTx(context.Background(), tx, &e))
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(11), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxUpdatePartialStatusOnly(t *testing.T) {
	repo, mock, done := newMockInboxRepo(t)
	defer done()

	// Only the provided column appears in the SET clause.
	mock.ExpectExec(`UPDATE inbox SET status=\? WHERE id=\?`).
		WithArgs(model.StatusDenied, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, image,.+FROM inbox WHERE id=").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows(inboxCols).
			AddRow(11, "/images/1.png", "Laptop-1", "Electronics", "Laptops",
				"alice", "2025-01-15", model.AvailabilityAvailable, model.StatusDenied))

	status := model.StatusDenied
	entry, err := repo.UpdatePartial(context.Background(), 11, nil, &status)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDenied, entry.Status)
	// The availability column keeps its prior value.
	assert.Equal(t, model.AvailabilityAvailable, entry.Availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxUpdatePartialBothFields(t *testing.T) {
	repo, mock, done := newMockInboxRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE inbox SET availability=\?, status=\? WHERE id=\?`).
		WithArgs(model.AvailabilityInUse, model.StatusApproved, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, image,.+FROM inbox WHERE id=").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(inboxCols).
			AddRow(4, nil, "Chair-7", "Furniture", "Chairs",
				"bob", nil, model.AvailabilityInUse, model.StatusApproved))

	avail := model.AvailabilityInUse
	status := model.StatusApproved
	entry, err := repo.UpdatePartial(context.Background(), 4, &avail, &status)
	require.NoError(t, err)

	assert.Equal(t, model.AvailabilityInUse, entry.Availability)
	assert.Equal(t, "", entry.Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxUpdatePartialMissingRow(t *testing.T) {
	repo, mock, done := newMockInboxRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE inbox SET status=\? WHERE id=\?`).
		WithArgs(model.StatusDenied, 999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, image,.+FROM inbox WHERE id=").
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePartial(context.Background(), 999, nil, strPtr(model.StatusDenied))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxListScansNullColumns(t *testing.T) {
	repo, mock, done := newMockInboxRepo(t)
	defer done()

	mock.ExpectQuery("SELECT id, image,.+FROM inbox").
		WillReturnRows(sqlmock.NewRows(inboxCols).
			AddRow(1, nil, "Laptop-1", "Electronics", "Laptops",
				"alice", nil, model.AvailabilityAvailable, model.StatusApproved))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Image)
	assert.Equal(t, "", out[0].DueDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
