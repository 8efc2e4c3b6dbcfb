package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/repository"
)

var inboxCols = []string{
	"id", "image", "asset_name", "asset_type", "sub_category",
	"user_name", "due_date", "availability", "status",
}

func newInboxHandler(t *testing.T) (*InboxHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewInboxHandler(repository.NewInboxRepo(db)), mock, func() { db.Close() }
}

func putJSON(t *testing.T, h *InboxHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/inbox/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	return rec
}

func TestInboxUpdateStatusKeepsAvailability(t *testing.T) {
	h, mock, done := newInboxHandler(t)
	defer done()

	mock.ExpectExec(`UPDATE inbox SET status=\? WHERE id=\?`).
		WithArgs(model.StatusDenied, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, image,.+FROM inbox WHERE id=").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows(inboxCols).
			AddRow(11, "/images/1.png", "Laptop-1", "Electronics", "Laptops",
				"alice", "2025-01-15", model.AvailabilityAvailable, model.StatusDenied))

	rec := putJSON(t, h, "11", `{"status":"Denied"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry model.InboxEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, model.StatusDenied, entry.Status)
	assert.Equal(t, model.AvailabilityAvailable, entry.Availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxUpdateMissingEntry(t *testing.T) {
	h, mock, done := newInboxHandler(t)
	defer done()

	mock.ExpectExec(`UPDATE inbox SET availability=\? WHERE id=\?`).
		WithArgs(model.AvailabilityReserved, 999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, image,.+FROM inbox WHERE id=").
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	rec := putJSON(t, h, "999", `{"availability":"Reserved"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxUpdateRejectsBadID(t *testing.T) {
	h, _, done := newInboxHandler(t)
	defer done()

	rec := putJSON(t, h, "abc", `{"status":"Denied"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInboxListReturnsEntries(t *testing.T) {
	h, mock, done := newInboxHandler(t)
	defer done()

	mock.ExpectQuery("SELECT id, image,.+FROM inbox").
		WillReturnRows(sqlmock.NewRows(inboxCols).
			AddRow(1, nil, "Laptop-1", "Electronics", "Laptops",
				"alice", "2025-01-15", model.AvailabilityAvailable, model.StatusApproved))

	req := httptest.NewRequest(http.MethodGet, "/api/inbox", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.InboxEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Laptop-1", entries[0].AssetName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
