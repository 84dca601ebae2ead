package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemaScalarKeywords(t *testing.T) {
	cases := map[string]SKind{
		"any": SAny, "null": SNull, "bool": SBool,
		"int": SInt, "double": SDouble, "str": SString,
	}
	for text, kind := range cases {
		s, err := ParseSchema(text)
		require.NoError(t, err, text)
		assert.Equal(t, kind, s.Kind(), text)
	}
}

func TestParseSchemaUnknownKeywordIsParseError(t *testing.T) {
	_, err := ParseSchema("bogus")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseSchemaIntRange(t *testing.T) {
	s, err := ParseSchema("int(1..10)")
	require.NoError(t, err)
	min, max := s.IntRange()
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, int64(1), *min)
	assert.Equal(t, int64(10), *max)
}

func TestParseSchemaIntUnboundedRangeIsEmptyParens(t *testing.T) {
	s, err := ParseSchema("int()")
	require.NoError(t, err)
	min, max := s.IntRange()
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func TestParseSchemaIntOneSidedRange(t *testing.T) {
	s, err := ParseSchema("int(..10)")
	require.NoError(t, err)
	min, max := s.IntRange()
	assert.Nil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, int64(10), *max)
}

func TestParseSchemaStringPatternAndLength(t *testing.T) {
	s, err := ParseSchema(`str("[A-Z]+"){2,5}`)
	require.NoError(t, err)
	require.NotNil(t, s.StringPattern())
	assert.Equal(t, "[A-Z]+", *s.StringPattern())
	min, max := s.StringLenRange()
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 2, *min)
	assert.Equal(t, 5, *max)
}

func TestParseSchemaStringMalformedRegexIsParseError(t *testing.T) {
	_, err := ParseSchema(`str("[")`)
	assert.Error(t, err)
}

func TestParseSchemaEnum(t *testing.T) {
	s, err := ParseSchema(`enum(1,"a",true,null)`)
	require.NoError(t, err)
	require.Len(t, s.EnumValues(), 4)
}

func TestParseSchemaArrayWithUniqueAndLenQ(t *testing.T) {
	s, err := ParseSchema(`[unique int]{1,4}`)
	require.NoError(t, err)
	assert.True(t, s.Unique())
	assert.Equal(t, SInt, s.Elem().Kind())
	min, max := s.ArrayLenRange()
	assert.Equal(t, 1, *min)
	assert.Equal(t, 4, *max)
}

func TestParseSchemaTuple(t *testing.T) {
	s, err := ParseSchema(`(int,str,bool)`)
	require.NoError(t, err)
	require.Len(t, s.TupleElems(), 3)
	assert.Equal(t, SInt, s.TupleElems()[0].Kind())
	assert.Equal(t, SString, s.TupleElems()[1].Kind())
	assert.Equal(t, SBool, s.TupleElems()[2].Kind())
}

func TestParseSchemaObjectRequiredOptionalAndDefault(t *testing.T) {
	s, err := ParseSchema(`{"x":int,?"y":str,?"z":int=5}`)
	require.NoError(t, err)
	x, ok := s.Property("x")
	require.True(t, ok)
	assert.False(t, x.Optional)

	y, ok := s.Property("y")
	require.True(t, ok)
	assert.True(t, y.Optional)

	z, ok := s.Property("z")
	require.True(t, ok)
	require.NotNil(t, z.Default)
	assert.Equal(t, int64(5), mustInt(t, *z.Default))
}

func TestParseSchemaObjectDefaultOnRequiredPropertyIsParseError(t *testing.T) {
	_, err := ParseSchema(`{"x":int=1}`)
	assert.Error(t, err, "default values are only permitted on optional properties")
}

func TestParseSchemaObjectPatternProperty(t *testing.T) {
	s, err := ParseSchema(`{re"dbl_.+":double}`)
	require.NoError(t, err)
	require.Len(t, s.PatternProperties(), 1)
	assert.Equal(t, "dbl_.+", s.PatternProperties()[0].Pattern)
}

func TestParseSchemaExtensibleObject(t *testing.T) {
	s, err := ParseSchema(`extensible {"x":int}`)
	require.NoError(t, err)
	assert.True(t, s.Extensible())
}

func TestParseSchemaCombinators(t *testing.T) {
	s, err := ParseSchema(`allOf(int,double)`)
	require.NoError(t, err)
	assert.Equal(t, SAllOf, s.Kind())
	require.Len(t, s.Subs(), 2)

	s, err = ParseSchema(`not(bool)`)
	require.NoError(t, err)
	assert.Equal(t, SNot, s.Kind())
	assert.Equal(t, SBool, s.Inner().Kind())
}

func TestParseSchemaDefinitionAndReference(t *testing.T) {
	s, err := ParseSchema(`#pos int(0..) # {"count":@pos}`)
	require.NoError(t, err)
	require.Len(t, s.Definitions(), 1)
	assert.Equal(t, "pos", s.Definitions()[0].Name)

	count, ok := s.Property("count")
	require.True(t, ok)
	assert.Equal(t, SReference, count.Schema.Kind())
	assert.Equal(t, "pos", count.Schema.RefName())
	require.NotNil(t, count.Schema.Resolved())
	assert.Equal(t, SInt, count.Schema.Resolved().Kind())
}

func TestParseSchemaUnresolvedReferenceIsParseError(t *testing.T) {
	_, err := ParseSchema(`@missing`)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestParseSchemaExtendedReference(t *testing.T) {
	s, err := ParseSchema(`#obj {"x":int} # extended @obj`)
	require.NoError(t, err)
	assert.True(t, s.Extended())
}

func TestParseSchemaDocstringsAttachToEnclosingSchema(t *testing.T) {
	s, err := ParseSchema("/** a greeting */ str")
	require.NoError(t, err)
	require.Len(t, s.Docstrings(), 1)
	assert.Equal(t, "a greeting", s.Docstrings()[0])
}

func TestParseSchemaNestedDefinitionsLexicalScoping(t *testing.T) {
	// the inner reference resolves against the inner scope's own
	// definition, not the outer one, because inner shadows outer.
	s, err := ParseSchema(`#n int(0..10) # {"a":#n int(20..30) # @n}`)
	require.NoError(t, err)
	a, ok := s.Property("a")
	require.True(t, ok)
	ref := a.Schema
	min, max := ref.Resolved().IntRange()
	assert.Equal(t, int64(20), *min)
	assert.Equal(t, int64(30), *max)
}

func TestParseSchemaDuplicateDefinitionInSameScopeIsParseError(t *testing.T) {
	_, err := ParseSchema(`#n int # #n str # any`)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateDefinition)
}
