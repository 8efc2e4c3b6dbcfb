package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/asset-management/internal/config"
	"github.com/iliyamo/asset-management/internal/repository"
	"github.com/iliyamo/asset-management/internal/utils"
)

var userCols = []string{
	"id", "username", "email", "phone_number", "password_hash", "created_date", "role_id",
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // min cost keeps the test fast
	}
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func TestAuthenticateWrongPassword(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE email=").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "alice", "alice@example.com", "", hash, "2024-01-01", 1))

	req, rec := postJSON("/api/authenticate", `{"email":"alice@example.com","password":"battery-staple"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Authenticate(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE email=").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	req, rec := postJSON("/api/authenticate", `{"email":"nobody@example.com","password":"whatever"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Authenticate(c))
	// Same body as a bad password so callers cannot probe for accounts.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateSuccessIssuesTokenPair(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE email=").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "alice", "alice@example.com", "555-0100", hash, "2024-01-01", 2))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	req, rec := postJSON("/api/authenticate", `{"email":"Alice@Example.com","password":"correct-horse"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Authenticate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "Store Manager", resp.User.Role)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRotatesToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	raw := "0123456789abcdef"
	hash := utils.HashRefreshRaw(raw)

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(1, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, username, email,.+FROM users WHERE id=").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "alice", "alice@example.com", "", "x", "2024-01-01", 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(2, 1))

	req, rec := postJSON("/api/refresh", `{"refresh_token":"`+raw+`"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, raw, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshUnknownToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WillReturnError(sql.ErrNoRows)

	req, rec := postJSON("/api/refresh", `{"refresh_token":"bogus"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
