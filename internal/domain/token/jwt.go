package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"primer/internal/domain/errs"
)

const minSecretLen = 32

// ErrWeakSecret is returned when the HMAC secret is shorter than 32 bytes.
var ErrWeakSecret = errors.New("jwt secret must be at least 32 bytes")

type jwtClaims struct {
	jwt.RegisteredClaims
	Type  Type `json:"type"`
	Fresh bool `json:"fresh,omitempty"`
}

// JWTIssuer signs HS256 JWTs.
type JWTIssuer struct {
	secret []byte
	opts   options
}

var _ Issuer = (*JWTIssuer)(nil)

// NewJWTIssuer builds an HS256 issuer around secret.
func NewJWTIssuer(secret []byte, opts ...Option) (*JWTIssuer, error) {
	if len(secret) < minSecretLen {
		return nil, ErrWeakSecret
	}

	s := make([]byte, len(secret))
	copy(s, secret)
	return &JWTIssuer{secret: s, opts: buildOptions(opts)}, nil
}

func (i *JWTIssuer) Issue(subject int64, typ Type, ttl time.Duration, fresh bool) (Issued, error) {
	if !typ.Valid() {
		return Issued{}, fmt.Errorf("issue token: unknown type %q", typ)
	}
	if ttl <= 0 {
		return Issued{}, fmt.Errorf("issue token: ttl must be positive")
	}

	// JWT timestamps have second precision; truncate so the claims we return
	// match what Verify will later report.
	now := i.opts.now().Truncate(time.Second)
	id, err := newID(now)
	if err != nil {
		return Issued{}, err
	}

	c := Claims{
		ID:        id,
		Subject:   subject,
		Type:      typ,
		Fresh:     fresh,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.opts.issuer,
			Subject:   strconv.FormatInt(subject, 10),
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			NotBefore: jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Type:  typ,
		Fresh: fresh,
	})

	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign token: %w", err)
	}

	return Issued{Token: signed, Claims: c}, nil
}

func (i *JWTIssuer) Verify(token string) (Claims, error) {
	var parsed jwtClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.opts.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.opts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errs.ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", errs.ErrInvalidSignature, err)
	}

	subject, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || parsed.ID == "" || !parsed.Type.Valid() {
		return Claims{}, fmt.Errorf("%w: malformed claims", errs.ErrInvalidSignature)
	}

	return Claims{
		ID:        parsed.ID,
		Subject:   subject,
		Type:      parsed.Type,
		Fresh:     parsed.Fresh,
		IssuedAt:  parsed.IssuedAt.Time,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
