// Package forms implements the schema driven form engine behind the admin
// console pages.  A Schema declares the ordered fields of one logical form;
// FormData holds the values and validation state of a single rendered form.
// Schemas are built once at startup and shared read-only, so configuration
// mistakes (duplicate names, unknown schema lookups) panic rather than
// returning errors.
package forms

import "fmt"

// FieldType describes the input widget a field renders as.
type FieldType int

// Supported field types.
const (
	TypeText FieldType = iota
	TypeTextarea
	TypeSecret
	TypeSelect
)

// String satisfies fmt.Stringer, used when serializing view models.
func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeTextarea:
		return "textarea"
	case TypeSecret:
		return "secret"
	case TypeSelect:
		return "select"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// Option is one entry of a select field's static source.
type Option struct {
	Value string
	Label string
}

// displayCondition makes a field visible only while the named peer field
// holds one of the accepted values.
type displayCondition struct {
	field  string
	values map[string]struct{}
}

// Field is the immutable definition of a single form field.
type Field struct {
	Name    string
	Type    FieldType
	Label   string
	Help    string
	Default string
	Options []Option
	Multi   bool
	Checks  []Validator

	display *displayCondition
}

// Schema is an ordered, named set of field definitions describing one form.
// Never mutated after registration.
type Schema struct {
	name   string
	fields []*Field
	index  map[string]*Field
}

// Name returns the schema's registered name.
func (s *Schema) Name() string { return s.name }

// Fields returns the field definitions in registration order.
func (s *Schema) Fields() []*Field { return s.fields }

// Field returns the named field definition, or nil when the schema does not
// define it.
func (s *Schema) Field(name string) *Field { return s.index[name] }

// Schemas is the process wide registry of form schemas.
type Schemas struct {
	schemas map[string]*Schema
}

// Lookup returns the named schema, panicking when it was never registered.
// Schema names are compiled in; a miss is a programming error.
func (s *Schemas) Lookup(name string) *Schema {
	schema, ok := s.schemas[name]
	if !ok {
		panic(fmt.Sprintf("forms: schema %q not registered", name))
	}
	return schema
}

// Build starts a fluent builder for a set of schemas.
func Build() *Builder {
	return &Builder{schemas: &Schemas{schemas: make(map[string]*Schema)}}
}

// Builder accumulates schemas; obtain one from Build.
type Builder struct {
	schemas *Schemas
}

// NewSchema starts the definition of a named schema.  Registering the same
// name twice panics.
func (b *Builder) NewSchema(name string) *SchemaBuilder {
	if _, ok := b.schemas.schemas[name]; ok {
		panic(fmt.Sprintf("forms: schema %q registered twice", name))
	}
	return &SchemaBuilder{
		parent: b,
		schema: &Schema{name: name, index: make(map[string]*Field)},
	}
}

// Schemas finalizes the builder and returns the registry.
func (b *Builder) Schemas() *Schemas { return b.schemas }

// SchemaBuilder collects the fields of one schema.
type SchemaBuilder struct {
	parent *Builder
	schema *Schema
}

// NewField starts the definition of a field within this schema.  Field names
// must be unique within the schema; a duplicate panics.
func (sb *SchemaBuilder) NewField(name string) *FieldBuilder {
	if _, ok := sb.schema.index[name]; ok {
		panic(fmt.Sprintf("forms: field %q defined twice in schema %q", name, sb.schema.name))
	}
	return &FieldBuilder{parent: sb, field: &Field{Name: name}}
}

// Build registers the schema and returns to the schema set builder.
func (sb *SchemaBuilder) Build() *Builder {
	sb.parent.schemas.schemas[sb.schema.name] = sb.schema
	return sb.parent
}

// FieldBuilder collects the attributes of one field.
type FieldBuilder struct {
	parent *SchemaBuilder
	field  *Field
}

// Type sets the field's input type.
func (fb *FieldBuilder) Type(t FieldType) *FieldBuilder {
	fb.field.Type = t
	return fb
}

// Label sets the human readable label.
func (fb *FieldBuilder) Label(label string) *FieldBuilder {
	fb.field.Label = label
	return fb
}

// Help sets the tooltip text shown beside the field.
func (fb *FieldBuilder) Help(help string) *FieldBuilder {
	fb.field.Help = help
	return fb
}

// Default sets the value a fresh form starts with.
func (fb *FieldBuilder) Default(value string) *FieldBuilder {
	fb.field.Default = value
	return fb
}

// Options declares a static select source for the field and switches its
// type to TypeSelect.
func (fb *FieldBuilder) Options(opts ...Option) *FieldBuilder {
	fb.field.Type = TypeSelect
	fb.field.Options = opts
	return fb
}

// Check appends validators, run in order by FormData.Validate.
func (fb *FieldBuilder) Check(checks ...Validator) *FieldBuilder {
	fb.field.Checks = append(fb.field.Checks, checks...)
	return fb
}

// DisplayIf makes the field visible only while the named peer field holds
// one of the given values.  Hidden fields are skipped by validation.
func (fb *FieldBuilder) DisplayIf(field string, values ...string) *FieldBuilder {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	fb.field.display = &displayCondition{field: field, values: set}
	return fb
}

// Build adds the field to the schema and returns to the schema builder.
func (fb *FieldBuilder) Build() *SchemaBuilder {
	f := fb.field
	fb.parent.schema.fields = append(fb.parent.schema.fields, f)
	fb.parent.schema.index[f.Name] = f
	return fb.parent
}
