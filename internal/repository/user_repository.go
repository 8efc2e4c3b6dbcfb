package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/utils"
)

// UserRepo encapsulates database operations for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserDetail is a user joined with its role name, shaped for the admin
// settings grid.  The created date is formatted in the query so the
// client never sees a time component.
type UserDetail struct {
	ID          uint64       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phoneNumber"`
	Role        string       `json:"role"`
	RoleID      model.RoleID `json:"role_id"`
	CreatedDate string       `json:"createdDate"`
}

// Create hashes the password and inserts a new user row.  The username
// and email carry unique indexes; a duplicate-key failure is mapped to
// ErrUserExists.  Returns the generated id.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	if !u.RoleID.Valid() {
		return 0, ErrInvalidRole
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, phone_number, password_hash, created_date, role_id) VALUES (?,?,?,?,?,?)",
		strings.TrimSpace(u.Username), normalizeEmail(u.Email), u.PhoneNumber, hash, u.CreatedDate, u.RoleID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email for authentication.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, email, phone_number, password_hash,
		        DATE_FORMAT(created_date, '%Y-%m-%d'), role_id
		 FROM users WHERE email=? LIMIT 1`,
		normalizeEmail(email)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.CreatedDate, &u.RoleID)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, email, phone_number, password_hash,
		        DATE_FORMAT(created_date, '%Y-%m-%d'), role_id
		 FROM users WHERE id=? LIMIT 1`,
		id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.CreatedDate, &u.RoleID)
	return u, err
}

// List returns every user joined with its role name, ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]UserDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, u.username, u.email, u.phone_number,
		        r.role_name, r.role_id,
		        DATE_FORMAT(u.created_date, '%Y-%m-%d')
		 FROM users u
		 JOIN roles r ON u.role_id = r.role_id
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserDetail, 0, 16)
	for rows.Next() {
		var d UserDetail
		if err := rows.Scan(&d.ID, &d.Username, &d.Email, &d.PhoneNumber, &d.Role, &d.RoleID, &d.CreatedDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update rewrites a user's profile fields and role.  When passwordHash
// is non-empty the stored hash is replaced too; otherwise the existing
// credential is kept.  sql.ErrNoRows is returned when the id does not
// exist.
func (r *UserRepo) Update(ctx context.Context, id uint64, u model.User, passwordHash string) error {
	if !u.RoleID.Valid() {
		return ErrInvalidRole
	}
	var (
		res sql.Result
		err error
	)
	if passwordHash != "" {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=?, email=?, phone_number=?, created_date=?, role_id=?, password_hash=? WHERE id=?",
			strings.TrimSpace(u.Username), normalizeEmail(u.Email), u.PhoneNumber, u.CreatedDate, u.RoleID, passwordHash, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=?, email=?, phone_number=?, created_date=?, role_id=? WHERE id=?",
			strings.TrimSpace(u.Username), normalizeEmail(u.Email), u.PhoneNumber, u.CreatedDate, u.RoleID, id)
	}
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUserExists
		}
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

// Delete removes a user by id.  sql.ErrNoRows is returned when no row
// was affected.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

// Usernames returns the flat list of usernames for the asset form's
// owner picker.
func (r *UserRepo) Usernames(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT username FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry) without
// depending on the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
