package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/extentix/internal/extent"
)

func TestContainment_ReturnContainee(t *testing.T) {
	sentence := extent.NewPostingList([]int64{0, 0})
	_ = sentence
	container := extent.NewOneElement(0, 100)
	containee := extent.NewPostingList([]int64{10, 50, 200})
	c := NewContainment(container, containee, false, false)

	e, ok := c.FirstStartGE(0)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{10, 10}, e)

	e, ok = c.FirstStartGE(11)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{50, 50}, e)

	_, ok = c.FirstStartGE(51)
	assert.False(t, ok, "200 lies outside the container [0,100]")
}

func TestContainment_ReturnContainer(t *testing.T) {
	containers := extent.NewPostingList([]int64{0})
	_ = containers
	a := extent.NewOneElement(0, 10)
	b := extent.NewOneElement(20, 30)
	containerList := NewOr(a, b)
	containee := extent.NewPostingList([]int64{5})
	c := NewContainment(containerList, containee, true, false)

	e, ok := c.FirstStartGE(0)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{0, 10}, e)

	_, ok = c.FirstStartGE(11)
	assert.False(t, ok, "containee has no extent inside [20,30]")
}

func TestContainment_InvertedContainee(t *testing.T) {
	container := extent.NewOneElement(0, 100)
	containee := extent.NewPostingList([]int64{10, 200})
	c := NewContainment(container, containee, false, true)

	e, ok := c.FirstStartGE(0)
	assert.True(t, ok)
	assert.Equal(t, extent.Extent{200, 200}, e, "10 is contained, so only 200 survives the negation")
}
