package astransform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformSequence_Basic(t *testing.T) {
	tr := New([]Rule{
		{Source: 100, Destination: 1000, Length: 10},
		{Source: 200, Destination: 2000, Length: 5},
	})

	postings := []int64{50, 105, 150, 202, 300}
	tr.TransformSequence(postings)
	// 50: before first rule, untouched
	// 105: inside [100,110) -> 1005
	// 150: no applicable rule, untouched
	// 202: inside [200,205) -> 2002
	// 300: after last rule, untouched
	assert.Contains(t, postings, int64(50))
	assert.Contains(t, postings, int64(1005))
	assert.Contains(t, postings, int64(150))
	assert.Contains(t, postings, int64(2002))
	assert.Contains(t, postings, int64(300))
}

func TestTransformSequence_ResortsAscending(t *testing.T) {
	tr := New([]Rule{{Source: 0, Destination: 1000, Length: 5}})
	postings := []int64{1, 2, 3}
	tr.TransformSequence(postings)
	for i := 1; i < len(postings); i++ {
		assert.LessOrEqual(t, postings[i-1], postings[i])
	}
}

func TestInvert_RoundTrips(t *testing.T) {
	tr := New([]Rule{
		{Source: 100, Destination: 1000, Length: 10},
		{Source: 200, Destination: 2000, Length: 5},
	})
	inv := tr.Invert()
	postings := []int64{1005, 2002}
	inv.TransformSequence(postings)
	assert.Contains(t, postings, int64(105))
	assert.Contains(t, postings, int64(202))
}

func TestRegistry_UpdateRulesChains(t *testing.T) {
	reg := NewRegistry()
	reg.SetInitialTokenCount(0, 100)
	reg.UpdateRules(0, 500, 100)
	assert.Equal(t, int64(100), reg.InitialTokenCount(500))

	snap := reg.Snapshot()
	postings := []int64{50}
	snap.TransformSequence(postings)
	assert.Equal(t, int64(550), postings[0])

	reg.RemoveRules(500)
	snap2 := reg.Snapshot()
	postings2 := []int64{50}
	snap2.TransformSequence(postings2)
	assert.Equal(t, int64(50), postings2[0])
}
