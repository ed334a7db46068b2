package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := New(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{name: "login password", password: "Str0ngPW!"},
		{name: "vault pin", password: "1234"},
		{name: "unicode", password: "пароль-🔑"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHasher_SingleCharacterMutationFails(t *testing.T) {
	h := newTestHasher(t)
	pw := "Str0ngPW!"

	hash, err := h.Hash(pw)
	require.NoError(t, err)

	for i := range pw {
		mutated := []byte(pw)
		mutated[i]++
		assert.False(t, h.Verify(string(mutated), hash), "mutation at %d verified", i)
	}
	assert.False(t, h.Verify(pw+"x", hash))
	assert.False(t, h.Verify(pw[:len(pw)-1], hash))
}

func TestHasher_SaltedOutput(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("1234")
	require.NoError(t, err)
	second, err := h.Hash("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	assert.False(t, h.Verify("1234", ""))
	assert.False(t, h.Verify("1234", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("1234", "$2a$04$short"))
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNew_CostFallback(t *testing.T) {
	h, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, h.Cost())
}
