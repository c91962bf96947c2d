// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrUsernameExists signals that a signup collided with an
// existing account, while ErrNoteNotFound covers both a missing note
// and a note owned by somebody else — lookups always filter on id and
// owner together, so the two cases are indistinguishable on purpose.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameExists is returned when creating a user whose username is
// already taken. Handlers should translate this into an HTTP 400
// response.
var ErrUsernameExists = errors.New("username already exists")

// ErrTitleExists is returned when creating or retitling a note with a
// title that any note in the system already uses.
var ErrTitleExists = errors.New("title already exists")

// ErrUserNotFound is returned when an operation targets a user id that
// has no row in the users table.
var ErrUserNotFound = errors.New("user not found")

// ErrNoteNotFound is returned when a note does not exist or does not
// belong to the requesting user.
var ErrNoteNotFound = errors.New("note not found")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). Two concurrent inserts racing at a unique index make
// the loser surface here rather than as an opaque driver error.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
