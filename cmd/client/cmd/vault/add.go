package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
	"primer/internal/app/client"
)

var addEntry client.NewEntry

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить запись (запись с тем же доменом перезаписывается)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		e := addEntry
		if e.Domain == "" {
			if e.Domain, err = types.ReadLine(out, "Домен: "); err != nil {
				return err
			}
		}
		if e.AccountName == "" {
			if e.AccountName, err = types.ReadLine(out, "Учетная запись: "); err != nil {
				return err
			}
		}
		if e.Secret, err = types.ReadSecret(out, "Секрет: "); err != nil {
			return err
		}

		id, err := app.AddEntry(cmd.Context(), e)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("Запись сохранена, id %d", id))
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addEntry.Domain, "domain", "d", "", "домен, например x.com")
	AddCmd.Flags().StringVarP(&addEntry.AccountName, "account", "a", "", "имя учетной записи")
	AddCmd.Flags().StringVar(&addEntry.URL, "url", "", "адрес сайта")
	AddCmd.Flags().StringVar(&addEntry.Notes, "notes", "", "заметки")
}
