package domain

import "errors"

// Failure taxonomy surfaced to handlers. Handlers match these with
// errors.Is and map them to HTTP statuses; anything else is a server
// error.
var (
	// ErrInvalidID indicates a malformed entity identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound indicates the addressed entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller does not own the resolved board.
	ErrForbidden = errors.New("access denied")
	// ErrDuplicateEmail indicates a signup against an already registered email.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials indicates a failed login. The reason is
	// deliberately undifferentiated.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrColumnBoardMismatch indicates a column that does not belong to the
	// expected board.
	ErrColumnBoardMismatch = errors.New("column does not belong to this board")
)
