package token

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Type distinguishes short-lived access tokens from long-lived refresh tokens.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

func (t Type) Valid() bool {
	return t == TypeAccess || t == TypeRefresh
}

func (t Type) String() string {
	return string(t)
}

// Claims is the verified payload of a token.
type Claims struct {
	ID        string
	Subject   int64
	Type      Type
	Fresh     bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issued is a freshly signed token together with its claims.
type Issued struct {
	Token  string
	Claims Claims
}

// Issuer mints and verifies self-contained signed tokens.
//
// Verify is purely cryptographic and time based; it never consults the
// revocation ledger.
type Issuer interface {
	Issue(subject int64, typ Type, ttl time.Duration, fresh bool) (Issued, error)
	Verify(token string) (Claims, error)
}

// newID returns a ULID used as the token's revocation key (jti).
func newID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("token id: %w", err)
	}
	return id.String(), nil
}

type options struct {
	issuer string
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*options)

// WithIssuer sets the "iss" claim written and required on verification.
func WithIssuer(iss string) Option {
	return func(o *options) {
		o.issuer = iss
	}
}

// WithClock overrides the time source. Tests use it to step past expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{issuer: "primer", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
