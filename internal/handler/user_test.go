package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/asset-management/internal/config"
	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{BcryptCost: 4}
	h := NewUserHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func putUser(t *testing.T, h *UserHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	return rec
}

func TestUserUpdatePasswordChangeRevokesSessions(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec("UPDATE users SET username=").
		WithArgs("alice", "alice@example.com", "", "2024-01-01", model.RoleUser, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	rec := putUser(t, h, "3",
		`{"username":"alice","email":"alice@example.com","password":"new-pass","createdDate":"2024-01-01","role_id":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateWithoutPasswordKeepsSessions(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	// No write to refresh_tokens is expected.
	mock.ExpectExec("UPDATE users SET username=").
		WithArgs("alice", "alice@example.com", "", "2024-01-01", model.RoleUser, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := putUser(t, h, "3",
		`{"username":"alice","email":"alice@example.com","createdDate":"2024-01-01","role_id":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateOmittedCreatedDateKeepsStored(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE id=").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(3, "alice", "alice@example.com", "", "x", "2024-01-01", 3))
	mock.ExpectExec("UPDATE users SET username=").
		WithArgs("alice", "alice@example.com", "", "2024-01-01", model.RoleUser, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := putUser(t, h, "3",
		`{"username":"alice","email":"alice@example.com","role_id":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateMissingUserWithoutCreatedDate(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE id=").
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	rec := putUser(t, h, "404",
		`{"username":"ghost","email":"ghost@example.com","role_id":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
