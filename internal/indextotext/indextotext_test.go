package indextotext

import (
	"path/filepath"
	"testing"

	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_LastSmallerEq(t *testing.T) {
	m := New()
	for i := int64(0); i < 5000; i += 2 {
		require.NoError(t, m.Append(i, i*10))
	}

	mp, ok := m.LastSmallerEq(4001)
	require.True(t, ok)
	assert.Equal(t, int64(4000), mp.IndexPosition)
	assert.Equal(t, int64(40000), mp.FilePosition)

	mp, ok = m.LastSmallerEq(0)
	require.True(t, ok)
	assert.Equal(t, int64(0), mp.IndexPosition)

	_, ok = m.LastSmallerEq(-1)
	assert.False(t, ok)
}

func TestMap_AppendRejectsDecreasing(t *testing.T) {
	m := New()
	require.NoError(t, m.Append(10, 100))
	err := m.Append(5, 50)
	assert.Error(t, err)
}

func TestMap_Filter(t *testing.T) {
	m := New()
	for i := int64(0); i < 100; i += 10 {
		require.NoError(t, m.Append(i, i))
	}
	files := extent.NewPostingList([]int64{0, 20, 50})
	m.Filter(files)
	for _, mp := range m.all {
		assert.True(t, mp.IndexPosition == 0 || mp.IndexPosition == 20 || mp.IndexPosition == 50)
	}
}

func TestMap_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2t.store")
	s, err := store.Create(path, store.MinPageSize, store.MinPageCount)
	require.NoError(t, err)
	defer s.Close()

	h, err := s.CreateFile()
	require.NoError(t, err)
	f, err := s.Open(h)
	require.NoError(t, err)

	m := New()
	for i := int64(0); i < 10; i++ {
		require.NoError(t, m.Append(i*100, i*1000))
	}
	require.NoError(t, m.SaveToDisk(f))

	size, err := s.GetSize(h)
	require.NoError(t, err)

	f2, err := s.Open(h)
	require.NoError(t, err)
	loaded, err := Load(f2, size)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), loaded.Len())

	mp, ok := loaded.LastSmallerEq(250)
	require.True(t, ok)
	assert.Equal(t, int64(200), mp.IndexPosition)
	assert.Equal(t, int64(2000), mp.FilePosition)
}
