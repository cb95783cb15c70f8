package domain

import "errors"

// Request-terminal errors. The API layer maps each one to a status code.
var (
	ErrBadCredentials = errors.New("bad user credentials")
	ErrBadToken       = errors.New("bad access token")
	ErrForbidden      = errors.New("forbidden")
	ErrNotImplemented = errors.New("not implemented")
	ErrInvalidJSON    = errors.New("Invalid JSON")
	ErrBadAttributes  = errors.New("bad attribute(s)")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotModified    = errors.New("changes already match existing entry")
)

// ErrSnapshotNotFound is returned by snapshot stores when nothing was saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")
