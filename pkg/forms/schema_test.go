package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSchemas() *Schemas {
	return Build().
		NewSchema("widget").
		NewField("kind").
		Options(Option{Value: "round", Label: "Round"}, Option{Value: "square", Label: "Square"}).
		Default("").
		Build().
		NewField("radius").
		Type(TypeText).
		Check(Required{}).
		DisplayIf("kind", "round").
		Build().
		NewField("note").
		Type(TypeTextarea).
		Build().
		Build().
		Schemas()
}

func TestLookupPreservesFieldOrderAndNames(t *testing.T) {
	schemas := buildTestSchemas()
	schema := schemas.Lookup("widget")

	require.Equal(t, "widget", schema.Name())

	var names []string
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"kind", "radius", "note"}, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupUnknownSchemaPanics(t *testing.T) {
	schemas := buildTestSchemas()
	assert.Panics(t, func() {
		schemas.Lookup("nonesuch")
	})
}

func TestDuplicateSchemaNamePanics(t *testing.T) {
	b := Build()
	b.NewSchema("dupe").Build()
	assert.Panics(t, func() {
		b.NewSchema("dupe")
	})
}

func TestDuplicateFieldNamePanics(t *testing.T) {
	sb := Build().NewSchema("widget")
	sb.NewField("kind").Build()
	assert.Panics(t, func() {
		sb.NewField("kind")
	})
}

func TestSchemaFieldLookup(t *testing.T) {
	schema := buildTestSchemas().Lookup("widget")

	f := schema.Field("radius")
	require.NotNil(t, f)
	assert.Equal(t, TypeText, f.Type)
	assert.Len(t, f.Checks, 1)

	assert.Nil(t, schema.Field("bogus"))
}

func TestFieldTypeStrings(t *testing.T) {
	tests := []struct {
		typ  FieldType
		want string
	}{
		{TypeText, "text"},
		{TypeTextarea, "textarea"},
		{TypeSecret, "secret"},
		{TypeSelect, "select"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.typ.String())
	}
}
