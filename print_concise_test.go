package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRoundTripsThroughAsJSONSchema(t *testing.T) {
	sources := []string{
		"any", "null", "bool",
		"int(1..10)", "double(..3.5)", `str("[A-Z]+"){1,4}`,
		`enum(1,"a",true,null)`,
		`[unique int]{1,3}`,
		`(int,str,bool)`,
		`{"x":int,?"y":str,?"z":int=5,re"dbl_.+":double}`,
		`extensible {"x":int}`,
		`allOf(int,double)`, `anyOf(bool,null)`, `oneOf(int,str)`,
		`not(bool)`,
		`#pos int(0..) # {"count":@pos}`,
	}
	for _, src := range sources {
		original, err := ParseSchema(src)
		require.NoError(t, err, src)

		rendered := original.Render()
		reparsed, err := ParseSchema(rendered)
		require.NoError(t, err, "re-parsing rendered form of %q: %q", src, rendered)

		wantSchema := AsJSONSchema(original).Compact()
		gotSchema := AsJSONSchema(reparsed).Compact()
		assert.Equal(t, wantSchema, gotSchema, "concise round trip via JSON-Schema canonical form for %q", src)
	}
}

func TestRenderProducesParseableSource(t *testing.T) {
	s, err := ParseSchema(`{"name":str,?"age":int(0..120)}`)
	require.NoError(t, err)
	rendered := s.Render()
	_, err = ParseSchema(rendered)
	require.NoError(t, err, "rendered form %q must parse back", rendered)
}
