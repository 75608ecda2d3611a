package box3d_test

import (
	"errors"
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTreeDef(t *testing.T) {
	def, err := box3d.ParseB3TreeDef([]byte(`
width: 8
refinementBudget: 10
streamingFallbackGroups: 0
`))
	require.NoError(t, err)

	expected := box3d.MakeB3TreeDef()
	expected.Width = 8
	expected.RefinementBudget = 10
	expected.StreamingFallbackGroups = 0
	assert.Equal(t, expected, def)

	tree, err := box3d.NewB3Tree(def)
	require.NoError(t, err)
	assert.Equal(t, 8, tree.GetWidth())
}

func TestParseTreeDefErrors(t *testing.T) {
	_, err := box3d.ParseB3TreeDef([]byte("width: 12"))
	assert.True(t, errors.Is(err, box3d.ErrInvalidWidth))

	_, err = box3d.ParseB3TreeDef([]byte("refinementBudget: -1"))
	assert.True(t, errors.Is(err, box3d.ErrInvalidBudget))

	_, err = box3d.ParseB3TreeDef([]byte("width: [1, 2"))
	assert.Error(t, err)

	def, err := box3d.ParseB3TreeDef(nil)
	require.NoError(t, err)
	assert.Equal(t, box3d.MakeB3TreeDef(), def)
}

func TestTreeDefRejectsNegativeFallback(t *testing.T) {
	_, err := box3d.ParseB3TreeDef([]byte("streamingFallbackGroups: -1"))
	assert.True(t, errors.Is(err, box3d.ErrInvalidFallback))
	assert.False(t, errors.Is(err, box3d.ErrInvalidCapacity))

	def := box3d.MakeB3TreeDef()
	def.StreamingFallbackGroups = -3
	_, err = box3d.NewB3BundleTree(def)
	assert.True(t, errors.Is(err, box3d.ErrInvalidFallback))
}
