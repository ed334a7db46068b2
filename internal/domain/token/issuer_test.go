package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primer/internal/domain/errs"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type issuerFactory func(t *testing.T, clock func() time.Time, opts ...Option) Issuer

func issuers() map[string]issuerFactory {
	pasetoKey := GeneratePasetoKeyHex()
	return map[string]issuerFactory{
		"jwt": func(t *testing.T, clock func() time.Time, opts ...Option) Issuer {
			i, err := NewJWTIssuer(testSecret, append([]Option{WithClock(clock)}, opts...)...)
			require.NoError(t, err)
			return i
		},
		"paseto": func(t *testing.T, clock func() time.Time, opts ...Option) Issuer {
			i, err := NewPasetoIssuer(pasetoKey, append([]Option{WithClock(clock)}, opts...)...)
			require.NoError(t, err)
			return i
		},
	}
}

// tamper flips one character in the middle of the last token segment.
func tamper(tok string) string {
	idx := strings.LastIndex(tok, ".") + 10
	b := []byte(tok)
	if b[idx] == 'A' {
		b[idx] = 'B'
	} else {
		b[idx] = 'A'
	}
	return string(b)
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
			issuer := factory(t, func() time.Time { return now })

			issued, err := issuer.Issue(42, TypeAccess, 15*time.Minute, true)
			require.NoError(t, err)
			require.NotEmpty(t, issued.Token)

			claims, err := issuer.Verify(issued.Token)
			require.NoError(t, err)
			assert.Equal(t, issued.Claims.ID, claims.ID)
			assert.Equal(t, int64(42), claims.Subject)
			assert.Equal(t, TypeAccess, claims.Type)
			assert.True(t, claims.Fresh)
			assert.True(t, claims.ExpiresAt.Equal(now.Add(15*time.Minute)))
			assert.True(t, claims.IssuedAt.Equal(now))
		})
	}
}

func TestIssuer_UniqueIDs(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			issuer := factory(t, time.Now)

			seen := make(map[string]struct{})
			for i := 0; i < 50; i++ {
				issued, err := issuer.Issue(1, TypeRefresh, time.Hour, false)
				require.NoError(t, err)
				_, dup := seen[issued.Claims.ID]
				require.False(t, dup)
				seen[issued.Claims.ID] = struct{}{}
			}
		})
	}
}

func TestIssuer_Expiry(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
			issuer := factory(t, func() time.Time { return now })

			issued, err := issuer.Issue(7, TypeAccess, time.Minute, false)
			require.NoError(t, err)

			now = now.Add(59 * time.Second)
			_, err = issuer.Verify(issued.Token)
			require.NoError(t, err)

			now = now.Add(2 * time.Second)
			_, err = issuer.Verify(issued.Token)
			assert.ErrorIs(t, err, errs.ErrTokenExpired)
		})
	}
}

func TestIssuer_TamperedSignature(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			issuer := factory(t, time.Now)

			issued, err := issuer.Issue(7, TypeAccess, time.Minute, false)
			require.NoError(t, err)

			_, err = issuer.Verify(tamper(issued.Token))
			assert.ErrorIs(t, err, errs.ErrInvalidSignature)
		})
	}
}

func TestIssuer_GarbageAndForeignIssuer(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			issuer := factory(t, time.Now)
			foreign := factory(t, time.Now, WithIssuer("someone-else"))

			issued, err := foreign.Issue(7, TypeAccess, time.Minute, false)
			require.NoError(t, err)

			_, err = issuer.Verify(issued.Token)
			assert.ErrorIs(t, err, errs.ErrInvalidSignature)

			for _, garbage := range []string{"", "abc", "a.b.c", "v4.public.AAAA"} {
				_, err = issuer.Verify(garbage)
				assert.ErrorIs(t, err, errs.ErrInvalidSignature, garbage)
			}
		})
	}
}

func TestIssuer_RejectsBadInput(t *testing.T) {
	for name, factory := range issuers() {
		t.Run(name, func(t *testing.T) {
			issuer := factory(t, time.Now)

			_, err := issuer.Issue(1, Type("session"), time.Minute, false)
			assert.Error(t, err)

			_, err = issuer.Issue(1, TypeAccess, 0, false)
			assert.Error(t, err)
		})
	}
}

func TestJWTIssuer_WrongKey(t *testing.T) {
	a, err := NewJWTIssuer(testSecret)
	require.NoError(t, err)
	b, err := NewJWTIssuer([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	issued, err := a.Issue(1, TypeAccess, time.Minute, false)
	require.NoError(t, err)

	_, err = b.Verify(issued.Token)
	assert.ErrorIs(t, err, errs.ErrInvalidSignature)
}

func TestNewJWTIssuer_WeakSecret(t *testing.T) {
	_, err := NewJWTIssuer([]byte("short"))
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestNewPasetoIssuer_BadKey(t *testing.T) {
	_, err := NewPasetoIssuer("not-hex")
	assert.Error(t, err)
}
