package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"employees/internal/app/client"
	"employees/internal/domain/record"
)

var fieldLabels = map[string]string{
	record.FieldFirstname:   "Имя",
	record.FieldLastname:    "Фамилия",
	record.FieldEmail:       "Email",
	record.FieldContact:     "Телефон (10 цифр)",
	record.FieldDesignation: "Должность",
	record.FieldSalary:      "Зарплата",
}

// isInteractive сообщает, подключен ли ввод команды к терминалу.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask запрашивает значение; пустой ввод оставляет current.
func (p *prompter) ask(field, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", fieldLabels[field], current)
	} else {
		fmt.Fprintf(p.out, "%s: ", fieldLabels[field])
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return current, nil
	}
	return line, nil
}

// fill спрашивает поля из списка fields и записывает ответы в форму.
func (p *prompter) fill(form *client.Form, fields []string) error {
	draft := form.Draft()
	for _, f := range fields {
		current, _ := draft.Get(f)
		value, err := p.ask(f, current)
		if err != nil {
			return err
		}
		if err := form.Set(f, value); err != nil {
			return err
		}
	}
	return nil
}
