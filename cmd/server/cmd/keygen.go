package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/internal/app/server/crypto"
	"primer/internal/domain/token"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Сгенерировать ключи для .env",
	Long: `Печатает VAULT_KEY, JWT_SECRET, PASETO_SECRET_KEY_HEX и парный ему
PASETO_PUBLIC_KEY_HEX для сервисов, которые только проверяют токены.
Смена VAULT_KEY делает уже сохраненные секреты нечитаемыми.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		vaultKey, err := crypto.GenerateKey()
		if err != nil {
			return err
		}

		jwtSecret := make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			return fmt.Errorf("generate jwt secret: %w", err)
		}

		pasetoKey := token.GeneratePasetoKeyHex()
		issuer, err := token.NewPasetoIssuer(pasetoKey)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		key := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(out, "%s=%s\n", key("VAULT_KEY"), hex.EncodeToString(vaultKey))
		fmt.Fprintf(out, "%s=%s\n", key("JWT_SECRET"), hex.EncodeToString(jwtSecret))
		fmt.Fprintf(out, "%s=%s\n", key("PASETO_SECRET_KEY_HEX"), pasetoKey)
		fmt.Fprintf(out, "%s=%s\n", key("PASETO_PUBLIC_KEY_HEX"), issuer.PublicKeyHex())
		return nil
	},
}
