package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"employees/internal/domain/record"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.Bold)
)

func jsonMode(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printRecordHuman(w io.Writer, rec *record.Record) {
	rows := []struct{ label, value string }{
		{"ID", rec.ID},
		{"Имя", rec.Firstname},
		{"Фамилия", rec.Lastname},
		{"Email", rec.Email},
		{"Телефон", rec.Contact},
		{"Должность", rec.Designation},
		{"Зарплата", strconv.FormatInt(rec.Salary, 10)},
		{"Создано", rec.CreatedAt.Local().Format("2006-01-02 15:04:05")},
		{"Обновлено", rec.UpdatedAt.Local().Format("2006-01-02 15:04:05")},
	}
	for _, r := range rows {
		labelColor.Fprintf(w, "%-11s", r.label+":")
		fmt.Fprintf(w, " %s\n", r.value)
	}
}

// printFieldErrors выводит ошибки полей в порядке формы.
func printFieldErrors(w io.Writer, errs record.ValidationErrors) {
	for _, f := range record.Fields {
		if msg, ok := errs[f]; ok {
			warnColor.Fprintf(w, "  %s: %s\n", f, msg)
		}
	}
}
