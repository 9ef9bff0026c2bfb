package forms

import "fmt"

// Validator checks a single field value.  The value argument is the raw
// string; present is false when the field is unset or blank.  A failing check
// returns its message, a passing check returns "".
//
// The set of validators is open for extension: adding a validator must not
// change the evaluation rules in FormData.Validate.
type Validator interface {
	Validate(value string, present bool) string
}

// Required fails when the field's value is absent or blank.
type Required struct{}

// Validate implements Validator.
func (Required) Validate(_ string, present bool) string {
	if !present {
		return "This field is required"
	}
	return ""
}

// MinLength fails when the value is present but shorter than Min characters.
// Absent values pass; pair with Required to also reject those.
type MinLength struct {
	Min int
}

// Validate implements Validator.
func (m MinLength) Validate(value string, present bool) string {
	if present && len(value) < m.Min {
		return fmt.Sprintf("Must be at least %d characters", m.Min)
	}
	return ""
}

// Validate runs every visible field's checks against the current values and
// rebuilds the error map.  Fields are evaluated in schema order.  Hidden
// fields impose no constraints and are skipped entirely.  Within one field
// the first failing check records the field's error and stops that field's
// remaining checks; other fields are still evaluated.  Returns true iff no
// field produced an error.
//
// Validate is idempotent: with unchanged values a second pass yields the
// identical error map.
func (d *FormData) Validate() bool {
	d.errors = make(map[string]string)
	for _, f := range d.schema.fields {
		if !d.IsVisible(f.Name) {
			continue
		}
		value, present := d.Value(f.Name)
		for _, check := range f.Checks {
			if msg := check.Validate(value, present); msg != "" {
				d.errors[f.Name] = msg
				break
			}
		}
	}
	return len(d.errors) == 0
}
