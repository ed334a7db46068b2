package vault

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// VaultCmd - родительская команда для работы с хранилищем
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Работа с хранилищем секретов",
	Long: `Пароль хранилища задается отдельно от пароля входа и запрашивается
при каждом просмотре секрета.`,
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный id записи: %q", arg)
	}
	return id, nil
}
