// Package indextotext implements the L3 index-to-text map (spec §4.3):
// a monotonic mapping from index positions (token addresses in the global
// extent-list address space) to file positions (byte offsets in the
// original source document), sampled sparsely enough to stay small.
// Grounded on original_source/index/indextotext.{h,cpp}.
package indextotext

import (
	"encoding/binary"
	"errors"
	"sort"

	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/store"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

var errMisaligned = errors.New("size not a multiple of the mapping record size")

// Granularity is the number of on-disk mappings per in-memory sampled
// entry, trading lookup precision for memory (spec §4.3; 2048 keeps the
// sample index at one 16-byte entry per 2048 mappings, under 8 bytes per
// thousand mappings).
const Granularity = 2048

// Mapping is one indexPosition -> filePosition pair.
type Mapping struct {
	IndexPosition int64
	FilePosition  int64
}

const mappingSize = 16 // two int64

// Map is an append-only, strictly-increasing sequence of Mappings, with a
// sparse in-memory sample for LastSmallerEq queries without reading every
// entry from disk.
type Map struct {
	all     []Mapping // full in-memory set (used until we decide to page to disk)
	samples []Mapping // every Granularity-th entry of all, kept sorted
}

// New returns an empty map.
func New() *Map { return &Map{} }

// Append adds one mapping; indexPosition must be >= the previous one.
func (m *Map) Append(indexPosition, filePosition int64) error {
	if len(m.all) > 0 && indexPosition < m.all[len(m.all)-1].IndexPosition {
		return &xerrors.ProtocolError{Op: "indextotext.Append", Detail: "index positions must be non-decreasing"}
	}
	m.all = append(m.all, Mapping{indexPosition, filePosition})
	if len(m.all)%Granularity == 1 {
		m.samples = append(m.samples, m.all[len(m.all)-1])
	}
	return nil
}

// AppendSequence adds several mappings at once (spec's addMappings bulk
// path, avoiding per-call overhead during bulk index construction).
func (m *Map) AppendSequence(mappings []Mapping) error {
	for _, mp := range mappings {
		if err := m.Append(mp.IndexPosition, mp.FilePosition); err != nil {
			return err
		}
	}
	return nil
}

// LastSmallerEq returns the mapping with the largest IndexPosition <=
// where, narrowing to a small window via the sample index before doing a
// linear scan of that window against the full set.
func (m *Map) LastSmallerEq(where int64) (Mapping, bool) {
	if len(m.all) == 0 {
		return Mapping{}, false
	}
	// Find the sample window [lo, hi) of m.all that could contain the answer.
	si := sort.Search(len(m.samples), func(i int) bool {
		return m.samples[i].IndexPosition > where
	})
	lo := 0
	if si > 0 {
		lo = (si - 1) * Granularity
	}
	hi := len(m.all)
	if si < len(m.samples) {
		hi = si * Granularity
		if hi > len(m.all) {
			hi = len(m.all)
		}
	}
	idx := sort.Search(hi-lo, func(i int) bool {
		return m.all[lo+i].IndexPosition > where
	})
	if lo+idx == 0 {
		return Mapping{}, false
	}
	return m.all[lo+idx-1], true
}

// Len reports the number of mappings held.
func (m *Map) Len() int { return len(m.all) }

// Filter keeps only mappings whose IndexPosition lies inside some extent
// of files, rebuilding the sample index — used when documents are deleted
// from the index and their token-position ranges are reclaimed.
func (m *Map) Filter(files extent.List) {
	kept := m.all[:0]
	for _, mp := range m.all {
		if e, ok := files.LastStartLE(mp.IndexPosition); ok && mp.IndexPosition <= e.End {
			kept = append(kept, mp)
		}
	}
	m.all = kept
	m.samples = m.samples[:0]
	for i, mp := range m.all {
		if i%Granularity == 0 {
			m.samples = append(m.samples, mp)
		}
	}
}

// SaveToDisk persists the full mapping sequence to a store.File, writing
// from offset 0. The file is not truncated: bytes past the new sequence
// left by a longer earlier save stay in place, so Load must be given the
// size of the sequence saved last.
func (m *Map) SaveToDisk(f *store.File) error {
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	buf := make([]byte, mappingSize*len(m.all))
	for i, mp := range m.all {
		off := i * mappingSize
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(mp.IndexPosition))
		binary.LittleEndian.PutUint64(buf[off+8:off+16], uint64(mp.FilePosition))
	}
	_, err := f.Write(buf)
	return err
}

// Load reads a previously saved mapping sequence from a store.File.
func Load(f *store.File, size int64) (*Map, error) {
	if size%mappingSize != 0 {
		return nil, &xerrors.CodecError{Op: "indextotext.Load", Offset: size, Err: errMisaligned}
	}
	buf := make([]byte, size)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	if _, err := f.Read(buf); err != nil {
		return nil, err
	}
	m := New()
	n := int(size / mappingSize)
	m.all = make([]Mapping, n)
	for i := 0; i < n; i++ {
		off := i * mappingSize
		m.all[i] = Mapping{
			IndexPosition: int64(binary.LittleEndian.Uint64(buf[off : off+8])),
			FilePosition:  int64(binary.LittleEndian.Uint64(buf[off+8 : off+16])),
		}
		if i%Granularity == 0 {
			m.samples = append(m.samples, m.all[i])
		}
	}
	return m, nil
}
