// Package apperr holds the error kinds shared by every service. Services wrap
// them with context and handlers classify them with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when a child record points at a parent
	// that is missing or does not exist.
	ErrInvalidReference = errors.New("invalid parent reference")

	// ErrReferentialConflict is returned when a parent record cannot be
	// deleted because a child record still references it.
	ErrReferentialConflict = errors.New("record is referenced by a dependent record")

	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
