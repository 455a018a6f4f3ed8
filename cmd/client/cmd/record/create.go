package record

import (
	"github.com/spf13/cobra"
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать запись",
	Long: `Создание записи о сотруднике.

Поля можно передать флагами; в терминале недостающие поля будут запрошены.
После успешного сохранения выводится список записей.`,
	Example: `  employees records create --firstname John --lastname Smith \
    --email john@example.com --contact 0123456789 --designation Engineer --salary 60000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, "")
	},
}

func init() {
	addFieldFlags(CreateCmd)
}
