package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var PasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Задать или сменить пароль хранилища",
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
		confirm, err := types.ReadSecret(out, "Повторите пароль хранилища: ")
		if err != nil {
			return err
		}
		if pw != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		if err := app.SetVaultPassword(cmd.Context(), pw); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("Пароль хранилища сохранен"))
		return nil
	},
}
