package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.store")
	s, err := Create(path, MinPageSize, MinPageCount)
	require.NoError(t, err)
	defer s.Close()

	h, err := s.CreateFile()
	require.NoError(t, err)

	f, err := s.Open(h)
	require.NoError(t, err)

	payload := make([]byte, MinPageSize*3+17)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	n, err := f.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	size, err := s.GetSize(h)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)

	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	readBack := make([]byte, len(payload))
	n, err = f.Read(readBack)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, readBack)
}

func TestStore_DeleteFileFreesPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.store")
	s, err := Create(path, MinPageSize, MinPageCount)
	require.NoError(t, err)
	defer s.Close()

	h, err := s.CreateFile()
	require.NoError(t, err)
	f, err := s.Open(h)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, MinPageSize*5))
	require.NoError(t, err)

	before := s.UsedPageCount()
	assert.Greater(t, before, int32(1))

	require.NoError(t, s.DeleteFile(h))
	assert.Equal(t, int32(0), s.UsedPageCount())

	_, err = s.Open(h)
	assert.Error(t, err)
}

func TestPageCache_ReadWriteHitsAndEvicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.store")
	s, err := Create(path, MinPageSize, MinPageCount)
	require.NoError(t, err)
	defer s.Close()

	cache := NewPageCache(s, LRU, 2)
	buf := make([]byte, MinPageSize)
	for i := range buf {
		buf[i] = 7
	}
	require.NoError(t, cache.Write(0, buf))
	require.NoError(t, cache.Write(1, buf))
	require.NoError(t, cache.Write(2, buf)) // evicts page 0
	assert.Equal(t, 2, cache.Len())
	require.NoError(t, cache.Flush())

	readBack := make([]byte, MinPageSize)
	require.NoError(t, s.ReadPage(0, readBack))
	assert.Equal(t, buf, readBack, "evicted dirty page must have been flushed to disk")
}

func TestStore_ReopenPreservesFileTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.store")
	s, err := Create(path, MinPageSize, MinPageCount)
	require.NoError(t, err)

	h, err := s.CreateFile()
	require.NoError(t, err)
	f, err := s.Open(h)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello store"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	size, err := s2.GetSize(h)
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello store")), size)

	f2, err := s2.Open(h)
	require.NoError(t, err)
	out := make([]byte, size)
	_, err = f2.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "hello store", string(out))
}
