// Package errs holds the error taxonomy shared by the session and vault domains.
//
// Domain packages return (or wrap) these sentinels; the HTTP layer maps them to
// status codes with errors.Is.
package errs

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrVaultLocked          = errors.New("vault password not set")
	ErrInvalidVaultPassword = errors.New("invalid vault password")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrIntegrity            = errors.New("ciphertext integrity check failed")
	ErrStorageUnavailable   = errors.New("storage unavailable")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("already exists")
)

// DomainError attaches a caller-facing message to one of the sentinels above.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Invalid builds an ErrInvalidArgument carrying msg.
func Invalid(msg string) error {
	return &DomainError{Err: ErrInvalidArgument, Message: msg}
}
