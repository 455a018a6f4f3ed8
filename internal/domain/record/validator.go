package record

import (
	"regexp"
	"strings"
)

const maxSalaryDigits = 7

// Сообщения об ошибках валидации.
const (
	MsgRequired      = "required"
	MsgInvalidFormat = "invalid format"
	MsgContactDigits = "must be exactly 10 digits"
	MsgInvalidNumber = "must be a valid number"
	MsgSalaryDigits  = "must be at most 7 digits"
)

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
)

// ValidationErrors maps a field name to its message. A field without a key is valid.
type ValidationErrors map[string]string

// Validate checks every field of the draft. It is the single rule set shared
// by the CLI form and the server.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}
	for _, f := range Fields {
		v, _ := d.Get(f)
		if msg := validateField(f, v); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// validateField возвращает первое нарушенное правило поля или пустую строку.
func validateField(field, value string) string {
	if strings.TrimSpace(value) == "" {
		switch field {
		case FieldFirstname, FieldLastname, FieldEmail, FieldContact, FieldDesignation, FieldSalary:
			return MsgRequired
		}
		return ""
	}

	switch field {
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return MsgInvalidFormat
		}
	case FieldContact:
		if !contactPattern.MatchString(value) {
			return MsgContactDigits
		}
	case FieldSalary:
		if !digitsPattern.MatchString(value) {
			return MsgInvalidNumber
		}
		if len(value) > maxSalaryDigits {
			return MsgSalaryDigits
		}
	}

	return ""
}
