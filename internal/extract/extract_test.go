package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText_Extract(t *testing.T) {
	p := NewPlainText(func(path string) ([]byte, error) { return []byte("hello " + path), nil })
	text, err := p.Extract("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello a.txt", string(text))
}

func TestCached_CachesSuccessfulExtraction(t *testing.T) {
	calls := 0
	inner := NewPlainText(func(path string) ([]byte, error) {
		calls++
		return []byte("text"), nil
	})
	c := NewCached(inner)

	_, err := c.Extract("a.txt")
	require.NoError(t, err)
	_, err = c.Extract("a.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	calls := 0
	inner := NewPlainText(func(path string) ([]byte, error) {
		calls++
		return nil, errors.New("boom")
	})
	c := NewCached(inner)

	_, err := c.Extract("a.txt")
	assert.Error(t, err)
	_, err = c.Extract("a.txt")
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestCached_InvalidateForcesReExtraction(t *testing.T) {
	calls := 0
	inner := NewPlainText(func(path string) ([]byte, error) {
		calls++
		return []byte("text"), nil
	})
	c := NewCached(inner)

	_, _ = c.Extract("a.txt")
	c.Invalidate("a.txt")
	_, _ = c.Extract("a.txt")
	assert.Equal(t, 2, calls)
}
