package extent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostingList_SeedExample(t *testing.T) {
	l := NewPostingList([]int64{10, 20, 30, 40, 50})

	e, ok := l.FirstStartGE(25)
	assert.True(t, ok)
	assert.Equal(t, Extent{30, 30}, e)

	e, ok = l.LastEndLE(25)
	assert.True(t, ok)
	assert.Equal(t, Extent{20, 20}, e)

	assert.Equal(t, int64(3), l.Count(15, 45))
}

func TestPostingList_NavigationConsistency(t *testing.T) {
	vals := []int64{5, 9, 17, 42, 100, 101, 250}
	for _, p := range []int64{-5, 0, 5, 6, 9, 10, 100, 250, 251, 1000} {
		l := NewPostingList(append([]int64(nil), vals...))
		e, ok := l.FirstStartGE(p)
		if !ok {
			continue
		}
		e2, ok2 := l.FirstStartGE(e.Start)
		assert.True(t, ok2)
		assert.Equal(t, e, e2, "FirstStartGE must be idempotent at its own start")

		le, ok3 := l.LastStartLE(e.Start)
		assert.True(t, ok3)
		assert.Equal(t, e, le)
	}
}

func TestPostingList_NoMatch(t *testing.T) {
	l := NewPostingList([]int64{1, 2, 3})
	_, ok := l.FirstStartGE(4)
	assert.False(t, ok)
	_, ok = l.LastEndLE(0)
	assert.False(t, ok)
}

func TestPostingList_NextN(t *testing.T) {
	l := NewPostingList([]int64{1, 2, 3, 10, 20, 30})
	out := l.NextN(0, 100, 3)
	assert.Equal(t, []Extent{{1, 1}, {2, 2}, {3, 3}}, out)
}

func TestEmpty(t *testing.T) {
	var e Empty
	_, ok := e.FirstStartGE(0)
	assert.False(t, ok)
	assert.True(t, e.IsSecure())
	assert.Equal(t, int64(0), e.Length())
}

func TestOneElement(t *testing.T) {
	o := NewOneElement(10, 20)
	ext, ok := o.FirstStartGE(5)
	assert.True(t, ok)
	assert.Equal(t, Extent{10, 20}, ext)
	_, ok = o.FirstStartGE(11)
	assert.False(t, ok)
	assert.True(t, o.IsAlmostSecure())
	assert.False(t, o.IsSecure())
}

func TestRange(t *testing.T) {
	r := NewRange(3, 9) // windows [0,2]..[7,9], length = 9-3+2 = 8
	assert.Equal(t, int64(8), r.Length())
	e, ok := r.FirstStartGE(5)
	assert.True(t, ok)
	assert.Equal(t, Extent{5, 7}, e)
	_, ok = r.FirstStartGE(8)
	assert.False(t, ok)
}
