package record

import (
	"strconv"
	"time"
)

// Имена полей записи так, как они приходят в JSON.
const (
	FieldFirstname   = "firstname"
	FieldLastname    = "lastname"
	FieldEmail       = "email"
	FieldContact     = "contact"
	FieldDesignation = "designation"
	FieldSalary      = "salary"
)

// Fields перечисляет бизнес-поля записи в порядке отображения.
var Fields = []string{
	FieldFirstname,
	FieldLastname,
	FieldEmail,
	FieldContact,
	FieldDesignation,
	FieldSalary,
}

// Record is a stored employee document.
type Record struct {
	ID          string    `json:"id" doc:"Идентификатор записи"`
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact" doc:"10 цифр, хранится строкой"`
	Designation string    `json:"designation"`
	Salary      int64     `json:"salary"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Draft is the textual form of a record's business fields, the shape
// both the form and the API validate.
type Draft struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Designation string `json:"designation"`
	Salary      string `json:"salary"`
}

// Draft returns the editable text of the record.
func (r *Record) Draft() Draft {
	return Draft{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Email:       r.Email,
		Contact:     r.Contact,
		Designation: r.Designation,
		Salary:      strconv.FormatInt(r.Salary, 10),
	}
}

// Get возвращает значение поля по его JSON-имени.
func (d Draft) Get(field string) (string, bool) {
	switch field {
	case FieldFirstname:
		return d.Firstname, true
	case FieldLastname:
		return d.Lastname, true
	case FieldEmail:
		return d.Email, true
	case FieldContact:
		return d.Contact, true
	case FieldDesignation:
		return d.Designation, true
	case FieldSalary:
		return d.Salary, true
	}
	return "", false
}

// Set устанавливает значение поля по его JSON-имени.
func (d *Draft) Set(field, value string) bool {
	switch field {
	case FieldFirstname:
		d.Firstname = value
	case FieldLastname:
		d.Lastname = value
	case FieldEmail:
		d.Email = value
	case FieldContact:
		d.Contact = value
	case FieldDesignation:
		d.Designation = value
	case FieldSalary:
		d.Salary = value
	default:
		return false
	}
	return true
}

// Patch returns a patch carrying every field of the draft.
func (d Draft) Patch() Patch {
	p := Patch{}
	for _, f := range Fields {
		v, _ := d.Get(f)
		p[f] = v
	}
	return p
}

// Filter выбирает записи для FindOne и Find.
type Filter struct {
	// Email совпадает точно.
	Email string
	// ExcludeID исключает запись с этим идентификатором.
	ExcludeID string
	// Query ищет подстроку без учета регистра в firstname, lastname, email и designation.
	Query string
}
