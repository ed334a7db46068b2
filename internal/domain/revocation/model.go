package revocation

import (
	"time"

	"primer/internal/domain/token"
)

// Record marks a token id as permanently unusable.
type Record struct {
	TokenID   string
	TokenType token.Type
	UserID    *int64
	RevokedAt time.Time
	// ExpiresAt is when the token would have expired anyway; the sweep deletes
	// records past this point.
	ExpiresAt time.Time
}
