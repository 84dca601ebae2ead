package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeFallsBackToMessageWithoutLocalizer(t *testing.T) {
	schema, err := ParseSchema("int(1..10)")
	require.NoError(t, err)
	value, err := ParseJSON("0")
	require.NoError(t, err)
	result := Match(schema, value)
	require.NotNil(t, result)

	assert.Equal(t, result.Message, result.Localize(nil))
}

func TestLocalizeUsesEmbeddedBundle(t *testing.T) {
	bundle, err := I18n()
	require.NoError(t, err)

	schema, err := ParseSchema("int(1..10)")
	require.NoError(t, err)
	value, err := ParseJSON("0")
	require.NoError(t, err)
	result := Match(schema, value)
	require.NotNil(t, result)
	require.Equal(t, "int.min", result.Code)

	en := bundle.NewLocalizer("en")
	assert.Contains(t, result.Localize(en), "1")

	zh := bundle.NewLocalizer("zh-Hans")
	assert.NotEmpty(t, result.Localize(zh))
}
