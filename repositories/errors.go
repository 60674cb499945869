// Package repositories holds the SQL access for users and students.
// Handlers translate the sentinel errors below into API errors.
package repositories

import "errors"

// ErrNotFound is returned when no row matches the lookup
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint
var ErrDuplicate = errors.New("duplicate key")
