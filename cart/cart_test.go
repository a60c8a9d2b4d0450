package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNewLine(t *testing.T) {
	c := Cart{}
	require.NoError(t, c.Add("A", 3, 10))
	assert.Equal(t, 3, c["A"])
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := Cart{"A": 2}
	require.NoError(t, c.Add("A", 3, 8))
	assert.Equal(t, 5, c["A"])
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := Cart{"A": 2}
	assert.ErrorIs(t, c.Add("A", 0, 10), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add("A", -1, 10), ErrInvalidQuantity)
	assert.Equal(t, Cart{"A": 2}, c)
}

func TestAddRejectsOverRemainingAndLeavesCartUnchanged(t *testing.T) {
	c := Cart{"A": 2}
	assert.ErrorIs(t, c.Add("A", 5, 4), ErrInsufficientStock)
	assert.Equal(t, Cart{"A": 2}, c)
}

func TestSetQuantityCeilingRestoresOwnReservation(t *testing.T) {
	// remaining 3 with 2 already staged: the user may keep up to 5.
	c := Cart{"A": 2}
	require.NoError(t, c.SetQuantity("A", 5, 3))
	assert.Equal(t, 5, c["A"])

	assert.ErrorIs(t, c.SetQuantity("A", 9, 3), ErrInsufficientStock)
	assert.Equal(t, 5, c["A"])
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := Cart{"A": 2, "B": 1}
	require.NoError(t, c.SetQuantity("A", 0, 10))
	_, ok := c["A"]
	assert.False(t, ok)
	assert.Equal(t, 1, c["B"])
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	c := Cart{"A": 2}
	assert.ErrorIs(t, c.SetQuantity("A", -1, 10), ErrInvalidQuantity)
	assert.Equal(t, 2, c["A"])
}

func TestClear(t *testing.T) {
	c := Cart{"A": 2, "B": 1}
	c.Clear()
	assert.True(t, c.Empty())
}

func TestCloneIsIndependent(t *testing.T) {
	c := Cart{"A": 2}
	d := c.Clone()
	d["A"] = 9
	assert.Equal(t, 2, c["A"])
}
