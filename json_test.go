package cschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJEqualityIsVariantWise(t *testing.T) {
	assert.True(t, NewInt(1).Equal(NewInt(1)))
	assert.False(t, NewInt(1).Equal(NewDouble(1.0)), "integer and double are distinct tags even when numerically equal")
	assert.True(t, Null.Equal(Null))
	assert.False(t, NewBool(true).Equal(NewBool(false)))
}

func TestJCompareOrdersByTagThenPayload(t *testing.T) {
	arr := NewArray()
	assert.True(t, arr.Compare(NewBool(true)) < 0, "Array sorts before Boolean in the fixed tag order")
	assert.True(t, NewString("x").Compare(NewDouble(1)) > 0, "String sorts after Double in the fixed tag order")
	assert.Equal(t, 0, NewInt(5).Compare(NewInt(5)))
	assert.True(t, NewInt(1).Compare(NewInt(2)) < 0)
}

func TestJObjectKeysAreSortedOnConstruction(t *testing.T) {
	obj := NewObject(
		Member{Key: "zeta", Value: NewInt(1)},
		Member{Key: "alpha", Value: NewInt(2)},
	)
	members, err := obj.AsObject()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alpha", members[0].Key)
	assert.Equal(t, "zeta", members[1].Key)
}

func TestJObjectDuplicateKeysLastWins(t *testing.T) {
	obj := NewObject(
		Member{Key: "x", Value: NewInt(1)},
		Member{Key: "x", Value: NewInt(2)},
	)
	v, ok := obj.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), mustInt(t, v))
}

func TestJAccessorsFailOnWrongKind(t *testing.T) {
	_, err := Null.AsInt()
	require.Error(t, err)
	var accessorErr *AccessorError
	require.ErrorAs(t, err, &accessorErr)
	assert.Equal(t, "AsInt", accessorErr.Op)
}

func TestNewDoublePanicsOnNonFinite(t *testing.T) {
	assert.Panics(t, func() { NewDouble(nan()) })
}

func mustInt(t *testing.T, v J) int64 {
	t.Helper()
	i, err := v.AsInt()
	require.NoError(t, err)
	return i
}

func nan() float64 {
	var zero float64
	return zero / zero
}
