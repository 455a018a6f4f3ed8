package record

import (
	"github.com/spf13/cobra"
)

var EditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Редактировать запись",
	Long: `Редактирование записи по ID.

Флаги меняют только переданные поля. Без флагов в терминале будут
запрошены все поля с текущими значениями по умолчанию.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, args[0])
	},
}

func init() {
	addFieldFlags(EditCmd)
}
