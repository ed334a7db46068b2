// cmd/client/cmd/auth/signup.go
package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var SignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Зарегистрировать нового пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		username, err := types.ReadLine(out, "Логин: ")
		if err != nil {
			return err
		}
		email, err := types.ReadLine(out, "Email: ")
		if err != nil {
			return err
		}
		password, err := types.ReadSecret(out, "Пароль: ")
		if err != nil {
			return err
		}
		confirm, err := types.ReadSecret(out, "Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		id, err := app.Signup(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("Регистрация завершена, id пользователя %d", id))
		fmt.Fprintln(out, "Теперь войдите в систему: primer auth signin")
		return nil
	},
}
