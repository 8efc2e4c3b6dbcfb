package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/asset-management/internal/model"
)

func newMockUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserRepo(db), mock, func() { db.Close() }
}

func TestUserCreateNormalizesEmailAndHashes(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "555-0100", sqlmock.AnyArg(), "2024-01-01", model.RoleUser).
		WillReturnResult(sqlmock.NewResult(3, 1))

	u := model.User{
		Username:    " alice ",
		Email:       " Alice@Example.COM ",
		PhoneNumber: "555-0100",
		CreatedDate: "2024-01-01",
		RoleID:      model.RoleUser,
	}
	id, err := repo.Create(context.Background(), u, "s3cret", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateMapsToErrUserExists(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

	u := model.User{Username: "alice", Email: "alice@example.com", CreatedDate: "2024-01-01", RoleID: model.RoleUser}
	_, err := repo.Create(context.Background(), u, "s3cret", 4)
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	repo, _, done := newMockUserRepo(t)
	defer done()

	u := model.User{Username: "alice", Email: "alice@example.com", RoleID: 9}
	_, err := repo.Create(context.Background(), u, "s3cret", 4)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserUpdateMissingRow(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	mock.ExpectExec("UPDATE users SET username=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	u := model.User{Username: "ghost", Email: "ghost@example.com", CreatedDate: "2024-01-01", RoleID: model.RoleUser}
	err := repo.Update(context.Background(), 404, u, "")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateKeepsPasswordWhenHashEmpty(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	// Without a replacement hash the password_hash column is untouched.
	mock.ExpectExec(`UPDATE users SET username=\?, email=\?, phone_number=\?, created_date=\?, role_id=\? WHERE id=\?`).
		WithArgs("alice", "alice@example.com", "555-0100", "2024-01-01", model.RoleAdmin, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := model.User{Username: "alice", Email: "alice@example.com", PhoneNumber: "555-0100", CreatedDate: "2024-01-01", RoleID: model.RoleAdmin}
	require.NoError(t, repo.Update(context.Background(), 3, u, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissingRow(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM users WHERE id=").
		WithArgs(77).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 77), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListJoinsRoleNames(t *testing.T) {
	repo, mock, done := newMockUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT u.id, u.username,.+JOIN roles r").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "phone_number", "role_name", "role_id", "created_date"}).
			AddRow(1, "alice", "alice@example.com", "555-0100", "Admin", 1, "2024-01-01").
			AddRow(2, "bob", "bob@example.com", "", "User", 3, "2024-02-02"))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Admin", out[0].Role)
	assert.Equal(t, model.RoleAdmin, out[0].RoleID)
	assert.Equal(t, model.RoleUser, out[1].RoleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
