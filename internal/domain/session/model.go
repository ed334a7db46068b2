package session

import (
	"time"

	"primer/internal/domain/token"
)

// Tokens is the result of a successful signin.
type Tokens struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Identity is what a verified, unrevoked access token vouches for.
type Identity struct {
	UserID int64
	Claims token.Claims
}
