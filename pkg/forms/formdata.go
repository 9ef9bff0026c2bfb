package forms

import "strings"

// FormData is the mutable state of one rendered form: current field values
// plus the error map produced by the last Validate pass.  An instance belongs
// to the single request or view that created it and must not be shared.
type FormData struct {
	schema *Schema
	values map[string]string
	errors map[string]string
}

// BuildForm creates a FormData bound to the named schema, seeded with each
// field's default value.  Panics when the schema was never registered.
func (s *Schemas) BuildForm(name string) *FormData {
	schema := s.Lookup(name)
	d := &FormData{
		schema: schema,
		values: make(map[string]string, len(schema.fields)),
		errors: make(map[string]string),
	}
	for _, f := range schema.fields {
		if f.Default != "" {
			d.values[f.Name] = f.Default
		}
	}
	return d
}

// Schema returns the schema this instance is bound to.
func (d *FormData) Schema() *Schema { return d.schema }

// Set stores a raw string value for the named field, overwriting any prior
// value.  Values are not validated at set time.  Names the bound schema does
// not define are silently ignored: HTTP form posts routinely carry extraneous
// keys, and the schema is the single source of truth for what a form holds.
func (d *FormData) Set(name, value string) {
	if d.schema.Field(name) == nil {
		return
	}
	d.values[name] = value
}

// Value returns the current raw value of a field.  A field that is unset, or
// whose value is blank after trimming, reports absent.
func (d *FormData) Value(name string) (string, bool) {
	v, ok := d.values[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// IsVisible reports whether the field is currently shown.  Fields without a
// display condition are always visible; unknown fields never are.
func (d *FormData) IsVisible(name string) bool {
	f := d.schema.Field(name)
	if f == nil {
		return false
	}
	if f.display == nil {
		return true
	}
	v, _ := d.Value(f.display.field)
	_, ok := f.display.values[v]
	return ok
}

// Error returns the validation message recorded for a field by the last
// Validate pass.
func (d *FormData) Error(name string) (string, bool) {
	msg, ok := d.errors[name]
	return msg, ok
}

// Errors returns a copy of the per field validation messages.
func (d *FormData) Errors() map[string]string {
	out := make(map[string]string, len(d.errors))
	for k, v := range d.errors {
		out[k] = v
	}
	return out
}
