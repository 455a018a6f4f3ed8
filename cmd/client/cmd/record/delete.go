package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить запись",
	Long: `Удаление записи по ID. Удаление окончательное.

Запись убирается из показанного списка только после подтверждения сервера.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list := app.NewList()
		if err := list.Load(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}
		if err := list.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}

		if jsonMode(cmd) {
			return printJSON(cmd.OutOrStdout(), list.Records())
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✓ Запись %s удалена\n\n", args[0])
		return list.Render(cmd.OutOrStdout())
	},
}
