package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDeltaVByte_SeedExample(t *testing.T) {
	// seq -> deltas [0, 127, 1, 72, 9800], the first four of which are
	// single vbyte bytes [0x00, 0x7F, 0x01, 0x48] unambiguously. The last
	// delta (9800) needs two bytes: low septet 72 (0x48) with the
	// continuation bit set (0xC8), then high septet 76 (0x4C) terminal.
	seq := []uint64{0, 127, 128, 200, 10_000}
	got := EncodeDeltaVByte(seq)
	want := []byte{0x00, 0x7F, 0x01, 0x48, 0xC8, 0x4C}
	assert.Equal(t, want, got)

	dec, err := DecodeDeltaVByte(got, len(seq))
	require.NoError(t, err)
	assert.Equal(t, seq, dec)
}

func TestDecodeDeltaVByte_RoundTrip(t *testing.T) {
	cases := [][]uint64{
		{},
		{0},
		{5},
		{0, 127, 128, 200, 10_000},
		{1, 2, 3, 4, 5, 1000, 1001, 1_000_000},
	}
	for _, seq := range cases {
		enc := EncodeDeltaVByte(seq)
		dec, err := DecodeDeltaVByte(enc, len(seq))
		require.NoError(t, err)
		if len(seq) == 0 {
			assert.Empty(t, dec)
		} else {
			assert.Equal(t, seq, dec)
		}
		assert.Equal(t, len(enc), EncodedLen(seq), "EncodedLen must match actual encoded length")
	}
}

func TestDecodeDeltaVByte_MonotonicPrefix(t *testing.T) {
	seq := []uint64{10, 20, 30, 40, 50}
	enc := EncodeDeltaVByte(seq)
	// Decoding a prefix count must reproduce the corresponding prefix of seq,
	// since postings are delta-coded against the running absolute value and
	// a segment boundary can fall after any posting.
	dec, err := DecodeDeltaVByte(enc, 3)
	require.NoError(t, err)
	assert.Equal(t, seq[:3], dec)
}

func TestDecodeDeltaVByte_Truncated(t *testing.T) {
	enc := EncodeDeltaVByte([]uint64{1, 1000})
	_, err := DecodeDeltaVByte(enc[:1], 2)
	require.Error(t, err)
}

func TestSplitSizes(t *testing.T) {
	assert.Equal(t, []int{100}, SplitSizes(100))
	assert.Equal(t, []int{MaxSegmentSize}, SplitSizes(MaxSegmentSize))
	// remaining > Target+Max: cut exactly Target and continue.
	total := TargetSegmentSize + MaxSegmentSize + 1
	sizes := SplitSizes(total)
	require.GreaterOrEqual(t, len(sizes), 2)
	assert.Equal(t, TargetSegmentSize, sizes[0])
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	assert.Equal(t, total, sum)
	// remaining in the awkward middle range gets split in half, not a tiny tail.
	midTotal := MaxSegmentSize + 10
	sizes = SplitSizes(midTotal)
	require.Len(t, sizes, 2)
	assert.Equal(t, midTotal/2, sizes[0])
	assert.Equal(t, midTotal-midTotal/2, sizes[1])
}

func TestEncodeSegments_RoundTrip(t *testing.T) {
	total := TargetSegmentSize*2 + 500
	seq := make([]uint64, total)
	for i := range seq {
		seq[i] = uint64(i) * 3
	}
	segments := EncodeSegments(seq, nil)
	var out []uint64
	for _, seg := range segments {
		dec, err := seg.Decode()
		require.NoError(t, err)
		out = append(out, dec...)
		assert.Equal(t, int64(len(seg.Payload)), seg.Header.ByteLength)
	}
	assert.Equal(t, seq, out)
}
