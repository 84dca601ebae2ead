package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONLiterals(t *testing.T) {
	v, err := ParseJSON("true")
	require.NoError(t, err)
	b, _ := v.AsBool()
	assert.True(t, b)

	v, err = ParseJSON("null")
	require.NoError(t, err)
	assert.Equal(t, KindNull, v.Kind())
}

func TestParseJSONNumbers(t *testing.T) {
	cases := []struct {
		text    string
		wantInt bool
	}{
		{"0", true},
		{"-12", true},
		{"0.5", false},
		{"0.", false},
		{"1e10", false},
		{"-3.14e-2", false},
	}
	for _, c := range cases {
		v, err := ParseJSON(c.text)
		require.NoError(t, err, c.text)
		if c.wantInt {
			assert.Equal(t, KindInteger, v.Kind(), c.text)
		} else {
			assert.Equal(t, KindDouble, v.Kind(), c.text)
		}
	}
}

func TestParseJSONRejectsLeadingZero(t *testing.T) {
	_, err := ParseJSON("01")
	require.Error(t, err)
	_, err = ParseJSON("-02")
	require.Error(t, err)
}

func TestParseJSONAllowsLoneZero(t *testing.T) {
	v, err := ParseJSON("0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), mustInt(t, v))
}

func TestParseJSONStringPreservesBackslashVerbatim(t *testing.T) {
	v, err := ParseJSON(`"a\"b"`)
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, `a\"b`, s, `a backslash preserves the following byte verbatim, no escape decoding`)
}

func TestParseJSONArrayAndObject(t *testing.T) {
	v, err := ParseJSON(`{"a":[1,2,3],"b":{"c":true}}`)
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	elems, err := a.AsArray()
	require.NoError(t, err)
	assert.Len(t, elems, 3)
}

func TestParseJSONTrailingCommaIsRejected(t *testing.T) {
	_, err := ParseJSON(`[1,2,]`)
	assert.Error(t, err)
}

func TestParseJSONTolersBlockComments(t *testing.T) {
	v, err := ParseJSON("/* leading */ { /* mid */ \"a\": 1 /* trailing */ }")
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), mustInt(t, a))
}

func TestParseJSONDuplicateObjectKeysLastWins(t *testing.T) {
	v, err := ParseJSON(`{"a":1,"a":2}`)
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), mustInt(t, a))
}

func TestParseJSONCompactRoundTrip(t *testing.T) {
	values := []string{
		`null`, `true`, `false`, `0`, `-5`, `3.25`, `"hi"`,
		`[1,2,3]`, `{"a":1,"b":[true,null]}`,
	}
	for _, text := range values {
		v, err := ParseJSON(text)
		require.NoError(t, err, text)
		reparsed, err := ParseJSON(v.Compact())
		require.NoError(t, err, text)
		assert.True(t, v.Equal(reparsed), "round trip through Compact for %q", text)
	}
}

func TestParseJSONPrettyRoundTrip(t *testing.T) {
	v, err := ParseJSON(`{"zeta":1,"alpha":[1,2,{"nested":true}]}`)
	require.NoError(t, err)
	reparsed, err := ParseJSON(v.Pretty(2))
	require.NoError(t, err)
	assert.True(t, v.Equal(reparsed))
}
