package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var forget bool

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long: `Отзывает текущий access токен на сервере.

Refresh токен остается действительным до истечения срока; флаг --forget
дополнительно удаляет локальную сессию целиком.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}
		if forget {
			if err := app.Forget(); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Выход выполнен"))
		return nil
	},
}

func init() {
	LogoutCmd.Flags().BoolVar(&forget, "forget", false, "удалить локальную сессию вместе с refresh токеном")
}
