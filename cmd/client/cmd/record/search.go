package record

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
)

var SearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Поиск записей",
	Long:  `Поиск подстроки без учета регистра в имени, фамилии, email и должности.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list := app.NewList()
		if err := list.Search(cmd.Context(), strings.Join(args, " ")); err != nil {
			return fmt.Errorf("ошибка поиска: %w", err)
		}

		if jsonMode(cmd) {
			return printJSON(cmd.OutOrStdout(), list.Records())
		}
		return list.Render(cmd.OutOrStdout())
	},
}
