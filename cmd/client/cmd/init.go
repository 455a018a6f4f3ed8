package cmd

import (
	"employees/cmd/client/cmd/record"
)

func init() {
	rootCmd.AddCommand(healthCmd)

	// Добавляем команды работы с записями
	rootCmd.AddCommand(record.RecordsCmd)
	record.RecordsCmd.AddCommand(record.ListCmd)
	record.RecordsCmd.AddCommand(record.SearchCmd)
	record.RecordsCmd.AddCommand(record.GetCmd)
	record.RecordsCmd.AddCommand(record.CreateCmd)
	record.RecordsCmd.AddCommand(record.EditCmd)
	record.RecordsCmd.AddCommand(record.DeleteCmd)
}
