// Package apierr turns domain errors into huma status errors.
package apierr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
)

// Vault lock state and a wrong vault password share one body so the
// response does not reveal whether a vault password was ever set.
const msgVaultPassword = "invalid vault password"

// From maps err onto an HTTP error. Unknown errors become 500 and are logged.
func From(log *slog.Logger, err error) error {
	if err == nil {
		return nil
	}

	var de *errs.DomainError
	message := func(fallback string) string {
		if errors.As(err, &de) && de.Message != "" {
			return de.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		return huma.Error400BadRequest(message("invalid argument"))
	case errors.Is(err, errs.ErrInvalidCredentials):
		return huma.Error401Unauthorized("invalid credentials")
	case errors.Is(err, errs.ErrTokenExpired):
		return huma.Error401Unauthorized("token expired")
	case errors.Is(err, errs.ErrTokenRevoked):
		return huma.Error401Unauthorized("token revoked")
	case errors.Is(err, errs.ErrInvalidSignature):
		return huma.Error401Unauthorized("invalid token")
	case errors.Is(err, errs.ErrVaultLocked), errors.Is(err, errs.ErrInvalidVaultPassword):
		return huma.Error401Unauthorized(msgVaultPassword)
	case errors.Is(err, errs.ErrUnauthorized):
		return huma.Error403Forbidden("not allowed to access this entry")
	case errors.Is(err, errs.ErrNotFound):
		return huma.Error404NotFound("entry not found")
	case errors.Is(err, errs.ErrConflict):
		return huma.Error409Conflict(message("already exists"))
	case errors.Is(err, errs.ErrIntegrity):
		log.Error("integrity failure", "error", err)
		return huma.Error500InternalServerError("stored secret failed integrity check")
	case errors.Is(err, errs.ErrStorageUnavailable):
		log.Error("storage unavailable", "error", err)
		return huma.Error503ServiceUnavailable("storage unavailable")
	default:
		log.Error("unhandled error", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
