package model

import "time"

// RoleID enumerates the application roles stored in the `roles`
// table.  The numeric values match the seeded rows so that the
// wire format (`role_id`) stays compatible with existing clients,
// while code refers to roles by name instead of bare literals.
type RoleID uint8

const (
	RoleAdmin        RoleID = 1 // full access to every view
	RoleStoreManager RoleID = 2 // inbox, assets and dashboard
	RoleUser         RoleID = 3 // my-assets and search only
)

// Name returns the human-readable role name as stored in roles.role_name.
func (r RoleID) Name() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStoreManager:
		return "Store Manager"
	case RoleUser:
		return "User"
	}
	return ""
}

// RoleFromName maps a role name back to its identifier.  The boolean
// result reports whether the name is a known role.
func RoleFromName(name string) (RoleID, bool) {
	switch name {
	case "Admin":
		return RoleAdmin, true
	case "Store Manager":
		return RoleStoreManager, true
	case "User":
		return RoleUser, true
	}
	return 0, false
}

// Valid reports whether the identifier refers to a seeded role.
func (r RoleID) Valid() bool { return r >= RoleAdmin && r <= RoleUser }

// User represents a row of the `users` table.  PasswordHash holds the
// bcrypt digest of the password; the plain value is never stored.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique display name, referenced by assets.username.
//  Email        – unique email address used to authenticate.
//  PhoneNumber  – contact number entered on the admin form.
//  PasswordHash – bcrypt hashed password.
//  CreatedDate  – account creation date (DATE column, YYYY-MM-DD).
//  RoleID       – foreign key into the roles table.
type User struct {
	ID           uint64 // users.id
	Username     string // users.username
	Email        string // users.email
	PhoneNumber  string // users.phone_number
	PasswordHash string // users.password_hash
	CreatedDate  string // users.created_date formatted YYYY-MM-DD
	RoleID       RoleID // users.role_id (references roles.role_id)
}

// Role represents a row in the `roles` table.
type Role struct {
	ID   RoleID `json:"id"`   // roles.role_id
	Name string `json:"name"` // roles.role_name
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token value is persisted; the raw token is
// returned to the client once and never stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
