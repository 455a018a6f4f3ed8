package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long:  `Просмотр всех записей, новые первыми.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list := app.NewList()
		if err := list.Load(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		if jsonMode(cmd) {
			return printJSON(cmd.OutOrStdout(), list.Records())
		}
		return list.Render(cmd.OutOrStdout())
	},
}
