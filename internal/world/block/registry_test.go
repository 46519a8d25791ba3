package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefaultsToAir(t *testing.T) {
	r := NewRegistry()
	assert.Same(t, Air, r.GetOrAir(999), "неизвестный ID должен давать воздух")
	got, ok := r.Get(AirBlockID)
	require.True(t, ok)
	assert.True(t, got.Air)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	rock := NewBlockType(10, "rock", Settings{})
	require.NoError(t, r.Register(rock))

	err := r.Register(NewBlockType(10, "other", Settings{}))
	assert.ErrorIs(t, err, ErrDuplicate)

	err = r.Register(NewBlockType(11, "rock", Settings{}))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegistryFreeze(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	err := r.Register(NewBlockType(10, "late", Settings{}))
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewBlockType(7, "b", Settings{})))
	require.NoError(t, r.Register(NewBlockType(3, "a", Settings{})))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []BlockID{0, 3, 7}, []BlockID{all[0].ID, all[1].ID, all[2].ID})
}

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier("stone")
	require.NoError(t, err)
	assert.Equal(t, Identifier{DefaultNamespace, "stone"}, id)

	id, err = ParseIdentifier("mod:block/ore")
	require.NoError(t, err)
	assert.Equal(t, "mod:block/ore", id.String())

	_, err = ParseIdentifier("bad ns:x")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = ParseIdentifier("ns:Bad Path!")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
