// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// parsing driver error strings.  Missing rows are reported with
// sql.ErrNoRows, following the standard library convention.
package repository

import "errors"

// ErrUserExists is returned when an insert or update would violate the
// unique constraint on users.username or users.email.  Handlers should
// translate this into an HTTP 409 response.
var ErrUserExists = errors.New("username or email already exists")

// ErrInvalidRole is returned when a caller supplies a role id that does
// not reference a seeded role.  Handlers should translate this into an
// HTTP 400 response.
var ErrInvalidRole = errors.New("invalid role id")
