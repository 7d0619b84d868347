package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/extentix/internal/extent"
)

func TestOrderedCombination_Basic(t *testing.T) {
	a := extent.NewPostingList([]int64{0, 5, 9})
	b := extent.NewPostingList([]int64{0, 3, 7})
	oc, err := NewOrderedCombination([]extent.List{a, b}, []int64{0, 10}, []int64{10, 10})
	require.NoError(t, err)

	e, ok := oc.FirstStartGE(0)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{0, 0}, e)

	e, ok = oc.FirstStartGE(6)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{9, 9}, e)

	e, ok = oc.FirstStartGE(10)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{10, 10}, e, "window b starts at offset 10")

	e, ok = oc.LastEndLE(12)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{10, 10}, e, "offset(10)+posting(3)=13 exceeds 12, so offset(10)+posting(0)=10 is the answer")
}

func TestOrderedCombination_RejectsOverlap(t *testing.T) {
	a := extent.NewPostingList([]int64{0, 5, 9})
	b := extent.NewPostingList([]int64{0})
	_, err := NewOrderedCombination([]extent.List{a, b}, []int64{0, 10}, []int64{15, 10})
	assert.Error(t, err, "declared window size 15 for sub-list a overlaps offset 10")
}
