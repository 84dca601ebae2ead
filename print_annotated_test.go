package cschema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyWordyPrintAnnotatesViolatingSubvalue(t *testing.T) {
	schema, err := ParseSchema(`{"age":int(0..120)}`)
	require.NoError(t, err)
	value, err := ParseJSON(`{"age":-5}`)
	require.NoError(t, err)

	result := Match(schema, value)
	require.NotNil(t, result)

	out := PrettyWordyPrint(value, result, 2)
	assert.Contains(t, out, "-5")
	assert.Contains(t, out, "^", "annotations are introduced by a caret marker")
	assert.Contains(t, out, "int: below minimum")
}

func TestPrettyWordyPrintOnSuccessHasNoAnnotations(t *testing.T) {
	schema, err := ParseSchema(`int`)
	require.NoError(t, err)
	value, err := ParseJSON(`1`)
	require.NoError(t, err)

	result := Match(schema, value)
	require.Nil(t, result)

	out := PrettyWordyPrint(value, result, 2)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestPrettyWordyPrintNestsDeeperForChildViolations(t *testing.T) {
	schema, err := ParseSchema(`[int]`)
	require.NoError(t, err)
	value, err := ParseJSON(`[1,"x"]`)
	require.NoError(t, err)

	result := Match(schema, value)
	require.NotNil(t, result)

	out := PrettyWordyPrint(value, result, 2)
	assert.Contains(t, out, "bad item [1]")
	assert.Contains(t, out, "int: not an integer")
}
