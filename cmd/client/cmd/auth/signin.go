// cmd/client/cmd/auth/signin.go
package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var signinUser string

var SigninCmd = &cobra.Command{
	Use:   "signin",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере Primer.

Access и refresh токены сохраняются локально для последующих команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		username := signinUser
		if username == "" {
			if username, err = types.ReadLine(out, "Логин: "); err != nil {
				return err
			}
		}
		password, err := types.ReadSecret(out, "Пароль: ")
		if err != nil {
			return err
		}

		if err := app.Signin(cmd.Context(), username, password); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("Вход выполнен"))
		return nil
	},
}

func init() {
	SigninCmd.Flags().StringVarP(&signinUser, "user", "u", "", "логин пользователя")
}
