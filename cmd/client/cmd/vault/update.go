package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
	"primer/internal/app/client"
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить запись",
	Long: `Меняет только переданные флагами поля. Секрет запрашивается всегда:
сервер заново шифрует его при каждом обновлении.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var p client.EntryPatch
		p.Domain = changed(cmd, "domain")
		p.AccountName = changed(cmd, "account")
		p.URL = changed(cmd, "url")
		p.Notes = changed(cmd, "notes")

		secret, err := types.ReadSecret(out, "Секрет: ")
		if err != nil {
			return err
		}
		p.Secret = &secret

		if err := app.UpdateEntry(cmd.Context(), id, p); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("Запись %d обновлена", id))
		return nil
	},
}

func changed(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	UpdateCmd.Flags().StringP("domain", "d", "", "новый домен")
	UpdateCmd.Flags().StringP("account", "a", "", "новое имя учетной записи")
	UpdateCmd.Flags().String("url", "", "новый адрес сайта")
	UpdateCmd.Flags().String("notes", "", "новые заметки")
}
