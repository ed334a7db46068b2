package cmd

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primer/internal/app/server/crypto"
	"primer/internal/domain/token"
)

func TestKeygen(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"keygen"})
	require.NoError(t, rootCmd.Execute())

	values := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, line)
		values[k] = v
	}

	_, err := crypto.ParseKeyHex(values["VAULT_KEY"])
	assert.NoError(t, err)

	secret, err := hex.DecodeString(values["JWT_SECRET"])
	require.NoError(t, err)
	_, err = token.NewJWTIssuer(secret)
	assert.NoError(t, err)

	issuer, err := token.NewPasetoIssuer(values["PASETO_SECRET_KEY_HEX"])
	require.NoError(t, err)
	assert.Equal(t, issuer.PublicKeyHex(), values["PASETO_PUBLIC_KEY_HEX"])
}
