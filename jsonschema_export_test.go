package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsJSONSchemaBasicTypes(t *testing.T) {
	s, err := ParseSchema("int(1..10)")
	require.NoError(t, err)
	doc := AsJSONSchema(s)

	typ, ok := doc.Get("type")
	require.True(t, ok)
	tv, _ := typ.AsString()
	assert.Equal(t, "integer", tv)

	min, ok := doc.Get("minimum")
	require.True(t, ok)
	assert.Equal(t, int64(1), mustInt(t, min))
}

func TestAsJSONSchemaObjectRequiredAndPatternProperties(t *testing.T) {
	s, err := ParseSchema(`{"x":int,?"y":str,re"dbl_.+":double}`)
	require.NoError(t, err)
	doc := AsJSONSchema(s)

	required, ok := doc.Get("required")
	require.True(t, ok)
	elems, err := required.AsArray()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	name, _ := elems[0].AsString()
	assert.Equal(t, "x", name)

	pp, ok := doc.Get("patternProperties")
	require.True(t, ok)
	members, err := pp.AsObject()
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "^dbl_.+$", members[0].Key)

	addl, ok := doc.Get("additionalProperties")
	require.True(t, ok)
	b, _ := addl.AsBool()
	assert.False(t, b)
}

func TestAsJSONSchemaStringPatternIsAnchored(t *testing.T) {
	s, err := ParseSchema(`str("[A-Z]+")`)
	require.NoError(t, err)
	doc := AsJSONSchema(s)
	pat, ok := doc.Get("pattern")
	require.True(t, ok)
	p, _ := pat.AsString()
	assert.Equal(t, "^[A-Z]+$", p)
}

func TestAsJSONSchemaReferenceExportsDefinitions(t *testing.T) {
	s, err := ParseSchema(`#pos int(0..) # {"count":@pos}`)
	require.NoError(t, err)
	doc := AsJSONSchema(s)

	defs, ok := doc.Get("definitions")
	require.True(t, ok)
	posSchema, ok := defs.Get("pos")
	require.True(t, ok)
	typ, ok := posSchema.Get("type")
	require.True(t, ok)
	tv, _ := typ.AsString()
	assert.Equal(t, "integer", tv)

	props, ok := doc.Get("properties")
	require.True(t, ok)
	count, ok := props.Get("count")
	require.True(t, ok)
	ref, ok := count.Get("$ref")
	require.True(t, ok)
	rv, _ := ref.AsString()
	assert.Equal(t, "#/definitions/pos", rv)
}

func TestExportJSONAndYAMLRoundTripTheSameDocument(t *testing.T) {
	s, err := ParseSchema(`{"name":str,?"age":int(0..120)}`)
	require.NoError(t, err)

	jsonBytes, err := s.ExportJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"name"`)

	yamlBytes, err := s.ExportYAML()
	require.NoError(t, err)
	assert.Contains(t, string(yamlBytes), "name")
}
