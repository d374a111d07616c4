// Package repositories implements the SQLite persistence layer. The
// sentinel errors below let higher layers such as the CLI shell
// distinguish between failure scenarios without inspecting driver
// error codes: a duplicate profile name, a duplicate title within one
// profile's collection, and lookups that matched no row.
package repositories

import (
	"errors"

	sqlite "modernc.org/sqlite"
)

// ErrUserExists is returned when a profile with the same name already exists.
var ErrUserExists = errors.New("user already exists")

// ErrMovieExists is returned when the profile already holds a movie
// with the same title.
var ErrMovieExists = errors.New("movie already exists")

// ErrUserNotFound is returned when no profile matches the given id or name.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when no movie matches the given
// (profile, title) pair.
var ErrMovieNotFound = errors.New("movie not found")

// SQLite extended result codes for uniqueness violations.
const (
	codeConstraintUnique     = 2067
	codeConstraintPrimaryKey = 1555
)

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure from the sqlite driver.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == codeConstraintUnique || se.Code() == codeConstraintPrimaryKey
}
