package record

import (
	"fmt"
	"strconv"
)

// Patch is a partial set of business fields keyed by JSON name. Only the
// keys present in a Patch are touched when it is applied; it never acts as
// a full replacement.
type Patch map[string]string

// Keys returns the supplied field names in display order.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, f := range Fields {
		if _, ok := p[f]; ok {
			keys = append(keys, f)
		}
	}
	return keys
}

// Missing returns the required fields absent from the patch or supplied empty.
func (p Patch) Missing() []string {
	var missing []string
	for _, f := range Fields {
		if p[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate runs the field rules for the supplied keys only.
func (p Patch) Validate() ValidationErrors {
	errs := ValidationErrors{}
	for f, v := range p {
		if msg := validateField(f, v); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// Draft fills a draft with the supplied values, leaving the rest empty.
func (p Patch) Draft() Draft {
	var d Draft
	for f, v := range p {
		d.Set(f, v)
	}
	return d
}

// Apply writes the supplied fields onto rec. The patch must already be valid.
func (p Patch) Apply(rec *Record) error {
	for f, v := range p {
		switch f {
		case FieldFirstname:
			rec.Firstname = v
		case FieldLastname:
			rec.Lastname = v
		case FieldEmail:
			rec.Email = v
		case FieldContact:
			rec.Contact = v
		case FieldDesignation:
			rec.Designation = v
		case FieldSalary:
			salary, err := ParseSalary(v)
			if err != nil {
				return err
			}
			rec.Salary = salary
		}
	}
	return nil
}

// ParseSalary converts validated salary text to its stored value.
func ParseSalary(s string) (int64, error) {
	salary, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: salary: %v", ErrInvalidData, err)
	}
	return salary, nil
}
