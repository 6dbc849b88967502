package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransTableStoreAndProbe(t *testing.T) {
	tt := NewTransTable(1)
	assert.Equal(t, 1, tt.SizeMB())

	tt.storeEntry(0xdeadbeef, 5, 0, 1234, 42, ExactFlag)

	entry, ok := tt.getEntry(0xdeadbeef)
	require.True(t, ok)
	assert.EqualValues(t, 1234, entry.Move)

	usable, score := tt.useEntry(entry, 0xdeadbeef, 5, -100, 100, 0)
	assert.True(t, usable)
	assert.Equal(t, int32(42), score)

	usable, _ = tt.useEntry(entry, 0xdeadbeef, 6, -100, 100, 0)
	assert.False(t, usable, "shallower entry must not cut a deeper search")

	_, ok = tt.getEntry(0xfeedface)
	assert.False(t, ok)
}

func TestTransTableMateScoresAreRelative(t *testing.T) {
	tt := NewTransTable(1)
	mateAtPly5 := MaxScore - 5

	tt.storeEntry(77, 3, 2, 0, mateAtPly5, ExactFlag)
	entry, ok := tt.getEntry(77)
	require.True(t, ok)

	_, score := tt.useEntry(entry, 77, 3, -MaxScore, MaxScore, 4)
	assert.Equal(t, mateAtPly5-2, score, "same mate found two plies deeper")
}

func TestTransTableBounds(t *testing.T) {
	tt := NewTransTable(1)
	tt.storeEntry(9, 4, 0, 0, 50, BetaFlag)
	entry, _ := tt.getEntry(9)

	usable, score := tt.useEntry(entry, 9, 4, 0, 40, 0)
	assert.True(t, usable)
	assert.Equal(t, int32(40), score)

	usable, _ = tt.useEntry(entry, 9, 4, 0, 60, 0)
	assert.False(t, usable)
}

func TestTransTableResizeAndClear(t *testing.T) {
	tt := NewTransTable(0)
	assert.Equal(t, 1, tt.SizeMB())

	tt.storeEntry(5, 1, 0, 0, 1, ExactFlag)
	tt.Clear()
	_, ok := tt.getEntry(5)
	assert.False(t, ok)

	tt.Resize(2)
	assert.Equal(t, 2, tt.SizeMB())
}
