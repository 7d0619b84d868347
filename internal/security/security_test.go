package security

import (
	"testing"

	"github.com/standardbeagle/extentix/internal/combinator"
	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeAlmostSecure_WrapsRawLeaf(t *testing.T) {
	visible := extent.NewOneElement(0, 100)
	leaf := extent.NewPostingList([]int64{5, 10, 200})

	rewritten := MakeAlmostSecure(leaf, visible)
	assert.True(t, rewritten.IsAlmostSecure())

	e, ok := rewritten.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, int64(5), e.Start)

	e, ok = rewritten.FirstStartGE(150)
	assert.False(t, ok, "200 lies outside the visible [0,100] extent")
	_ = e
}

func TestMakeSecure_ReturnsOnlyVisibleExtents(t *testing.T) {
	visible := extent.NewOneElement(10, 20)
	leaf := extent.NewPostingList([]int64{5, 15, 30})

	rewritten := MakeSecure(leaf, visible)
	assert.True(t, rewritten.IsSecure())

	e, ok := rewritten.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Start)
	assert.Equal(t, int64(20), e.End)
}

func TestMakeAlmostSecure_RecursesIntoAnd(t *testing.T) {
	visible := extent.NewOneElement(0, 1000)
	a := extent.NewPostingList([]int64{1, 2, 3})
	b := extent.NewPostingList([]int64{1, 2, 3})
	and := combinator.NewAnd(a, b)

	rewritten := MakeAlmostSecure(and, visible)
	assert.True(t, rewritten.IsAlmostSecure())
}
