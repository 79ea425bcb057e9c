package service

import "errors"

// Error kinds. Every error returned by the services unwraps to exactly one of these.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrStorage    = errors.New("storage error")
)

// Error carries a client-facing message and the kind it belongs to
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrFieldsRequired      = &Error{Kind: ErrValidation, Msg: "All fields are required"}
	ErrLoginFieldsRequired = &Error{Kind: ErrValidation, Msg: "Username, password and role required"}
	ErrInvalidRole         = &Error{Kind: ErrValidation, Msg: "Invalid role"}
	ErrUsernameTaken       = &Error{Kind: ErrConflict, Msg: "Username already exists"}

	// ErrInvalidCredentials covers both unknown username+role and wrong password
	ErrInvalidCredentials = &Error{Kind: ErrAuth, Msg: "Invalid credentials or role"}
)

// storageError wraps a repository failure so it unwraps to both ErrStorage and the cause
type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string { return e.op + ": " + e.err.Error() }

func (e *storageError) Unwrap() []error { return []error{ErrStorage, e.err} }

func wrapStorage(op string, err error) error {
	return &storageError{op: op, err: err}
}

// Kind returns the kind of err, or nil if it is not one of ours
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrConflict, ErrAuth, ErrStorage} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
