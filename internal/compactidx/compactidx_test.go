package compactidx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/extentix/internal/store"
)

func sampleDescriptors() []IntervalDescriptor {
	return []IntervalDescriptor{
		{IntervalStart: 0, IntervalEnd: 999, FirstTerm: "apple", LastTerm: "mango"},
		{IntervalStart: 1000, IntervalEnd: 1999, FirstTerm: "nectar", LastTerm: "zebra"},
	}
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	s, err := store.Create(filepath.Join(t.TempDir(), "idx.dat"), 4096, store.MinPageCount)
	require.NoError(t, err)
	defer s.Close()

	handle, err := s.CreateFile()
	require.NoError(t, err)
	f, err := s.Open(handle)
	require.NoError(t, err)

	require.NoError(t, Write(f, sampleDescriptors()))

	f2, err := s.Open(handle)
	require.NoError(t, err)
	hdr, got, err := Read(f2)
	require.NoError(t, err)
	assert.Equal(t, uint32(Fingerprint), hdr.Fingerprint)
	assert.Equal(t, sampleDescriptors(), got)
}

func TestRelocateShiftsIntervalBounds(t *testing.T) {
	out := Relocate(sampleDescriptors(), 500)
	assert.Equal(t, int64(500), out[0].IntervalStart)
	assert.Equal(t, int64(1499), out[0].IntervalEnd)
	assert.Equal(t, "apple", out[0].FirstTerm)
}

func TestSidecarKDLRoundTrip(t *testing.T) {
	text := WriteSidecarKDL(sampleDescriptors())
	got, err := ReadSidecarKDL(text)
	require.NoError(t, err)
	assert.Equal(t, sampleDescriptors(), got)
}
