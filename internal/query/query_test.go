package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/lexicon"
)

func buildLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex := lexicon.New(lexicon.NewStemmer(false, 0, nil), lexicon.NewFuzzyExpander(false, 0, 0))
	require.NoError(t, lex.Add("cat", 10))
	require.NoError(t, lex.Add("cat", 50))
	require.NoError(t, lex.Add("mat", 12))
	require.NoError(t, lex.Add("mat", 60))
	return lex
}

func TestCompiler_TermLeaf(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Term("cat"))
	e, ok := list.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Start)
}

func TestCompiler_MissingTermCompilesToEmpty(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Term("dog"))
	_, ok := list.FirstStartGE(0)
	assert.False(t, ok)
}

func TestCompiler_AndOfTwoTerms(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(And(Term("cat"), Term("mat")))
	e, ok := list.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Start)
	assert.Equal(t, int64(12), e.End)
}

func TestCompiler_OneElementAndRange(t *testing.T) {
	c := NewCompiler(lexicon.New(nil, nil))
	oe := c.Compile(OneElement(5, 9))
	e, ok := oe.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, extent.Extent{Start: 5, End: 9}, e)

	r := c.Compile(RangeExpr(3, 100))
	re, ok := r.FirstStartGE(0)
	require.True(t, ok)
	assert.Equal(t, int64(0), re.Start)
	assert.Equal(t, int64(2), re.End)
}

func TestDriver_RunCollectsInOrder(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Term("cat"))
	d := NewDriver(list)
	results, err := d.Collect(context.Background(), 0, extent.MaxOffset, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(10), results[0].Start)
	assert.Equal(t, int64(50), results[1].Start)
}

func TestDriver_RunRespectsLimit(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Term("cat"))
	d := NewDriver(list)
	results, err := d.Collect(context.Background(), 0, extent.MaxOffset, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDriver_RunHonorsCanceledContext(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Term("cat"))
	d := NewDriver(list)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Collect(ctx, 0, extent.MaxOffset, 0)
	assert.Error(t, err)
}

func TestDriver_CountMatchesCollectLength(t *testing.T) {
	lex := buildLexicon(t)
	c := NewCompiler(lex)
	list := c.Compile(Or(Term("cat"), Term("mat")))
	d := NewDriver(list)
	n, err := d.Count(context.Background(), 0, extent.MaxOffset)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
