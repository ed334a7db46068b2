package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var UnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Проверить пароль хранилища",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		pw, err := types.ReadSecret(out, "Пароль хранилища: ")
		if err != nil {
			return err
		}
		if err := app.Unlock(cmd.Context(), pw); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("Хранилище разблокировано"))
		return nil
	},
}
