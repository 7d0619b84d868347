package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/extentix/internal/extent"
)

func TestFromTo_Basic(t *testing.T) {
	from := extent.NewPostingList([]int64{10, 100})
	to := extent.NewPostingList([]int64{15, 20, 200})
	ft := NewFromTo(from, to)

	e, ok := ft.FirstStartGE(0)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{10, 15}, e, "nearest To after From=10 is 15")

	e, ok = ft.FirstStartGE(11)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{100, 200}, e, "From=100 skips To=15,20 since they precede it")
}

func TestFromTo_NoMatchWhenNoToFollows(t *testing.T) {
	from := extent.NewPostingList([]int64{500})
	to := extent.NewPostingList([]int64{10, 20})
	ft := NewFromTo(from, to)

	_, ok := ft.FirstStartGE(0)
	assert.False(t, ok)
}

func TestFromTo_LastEndLE(t *testing.T) {
	from := extent.NewPostingList([]int64{10, 100})
	to := extent.NewPostingList([]int64{15, 20, 200})
	ft := NewFromTo(from, to)

	e, ok := ft.LastEndLE(20)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{10, 15}, e)
}
