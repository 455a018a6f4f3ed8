package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Просмотреть запись",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		rec, err := app.API().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		if jsonMode(cmd) {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		printRecordHuman(cmd.OutOrStdout(), rec)
		return nil
	},
}
