package cschema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorUnwrapsToSentinel(t *testing.T) {
	_, err := ParseSchema("@missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedReference))
}

func TestParseErrorMessageIncludesPosition(t *testing.T) {
	_, err := ParseJSON("[1,2}")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Pos.String())
	assert.Contains(t, err.Error(), perr.Pos.String())
}

func TestAccessorErrorCarriesSnapshot(t *testing.T) {
	_, err := NewString("hi").AsInt()
	require.Error(t, err)
	var aerr *AccessorError
	require.ErrorAs(t, err, &aerr)
	s, _ := aerr.Snapshot.AsString()
	assert.Equal(t, "hi", s)
}
