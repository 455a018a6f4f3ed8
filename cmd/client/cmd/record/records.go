package record

import (
	"github.com/spf13/cobra"
)

// RecordsCmd - родительская команда для всех операций с записями
var RecordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"record"},
	Short:   "Управление записями сотрудников",
	Long:    `Просмотр, поиск, создание, редактирование и удаление записей о сотрудниках.`,
}
