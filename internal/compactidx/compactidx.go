// Package compactidx implements the compact-index trailer of spec.md
// §6.2: a fixed-size header describing an interval directory, followed
// by an array of (interval_start, interval_end, first_term, last_term)
// descriptors, copied with relocated bounds into another file by the
// copy-index relocation tool
// (SPEC_FULL §C.2) grounded on original_source/terabyte/copy_index.cpp's
// CompactIndexHeader/CompactIndexIntervalDescriptor copy-and-relocate
// pass.
package compactidx

import (
	"encoding/binary"
	"fmt"

	"github.com/standardbeagle/extentix/internal/store"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

// Fingerprint identifies a compact-index trailer. It is a different value
// from the paged store's preamble fingerprint (912837123, 0x3668CA03).
const Fingerprint = 0x36697AC3

const headerSize = 16  // fingerprint + descriptorCount + 2 reserved int32s
const descriptorSize = 32 // intervalStart, intervalEnd int64 + 2x 8-byte term prefix

// Header is the trailer's fixed-size lead-in.
type Header struct {
	Fingerprint     uint32
	DescriptorCount int32
}

// IntervalDescriptor is one entry of the interval directory. FirstTerm/
// LastTerm are truncated to an 8-byte prefix on disk (enough to binary
// search the directory; the lexicon itself holds the full term strings).
type IntervalDescriptor struct {
	IntervalStart int64
	IntervalEnd   int64
	FirstTerm     string
	LastTerm      string
}

func encodeTermPrefix(term string) [8]byte {
	var buf [8]byte
	copy(buf[:], term)
	return buf
}

func decodeTermPrefix(buf [8]byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

// Write appends the header and descriptors to f at its current position.
func Write(f *store.File, descriptors []IntervalDescriptor) error {
	hdr := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(hdr[0:4], Fingerprint)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(descriptors)))
	if _, err := f.Write(hdr); err != nil {
		return &xerrors.IOError{Op: "compactidx.Write", Err: err}
	}
	for _, d := range descriptors {
		buf := make([]byte, descriptorSize)
		binary.LittleEndian.PutUint64(buf[0:8], uint64(d.IntervalStart))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(d.IntervalEnd))
		first := encodeTermPrefix(d.FirstTerm)
		last := encodeTermPrefix(d.LastTerm)
		copy(buf[16:24], first[:])
		copy(buf[24:32], last[:])
		if _, err := f.Write(buf); err != nil {
			return &xerrors.IOError{Op: "compactidx.Write", Err: err}
		}
	}
	return nil
}

// Read reads a header and its descriptor array starting at the file's
// current position.
func Read(f *store.File) (Header, []IntervalDescriptor, error) {
	hdr := make([]byte, headerSize)
	if _, err := readFull(f, hdr); err != nil {
		return Header{}, nil, &xerrors.IOError{Op: "compactidx.Read", Err: err}
	}
	h := Header{
		Fingerprint:     binary.LittleEndian.Uint32(hdr[0:4]),
		DescriptorCount: int32(binary.LittleEndian.Uint32(hdr[4:8])),
	}
	if h.Fingerprint != Fingerprint {
		return h, nil, &xerrors.CodecError{Op: "compactidx.Read", Offset: 0, Err: fmt.Errorf("bad fingerprint %#x", h.Fingerprint)}
	}
	descriptors := make([]IntervalDescriptor, h.DescriptorCount)
	for i := range descriptors {
		buf := make([]byte, descriptorSize)
		if _, err := readFull(f, buf); err != nil {
			return h, nil, &xerrors.IOError{Op: "compactidx.Read", Err: err}
		}
		var first, last [8]byte
		copy(first[:], buf[16:24])
		copy(last[:], buf[24:32])
		descriptors[i] = IntervalDescriptor{
			IntervalStart: int64(binary.LittleEndian.Uint64(buf[0:8])),
			IntervalEnd:   int64(binary.LittleEndian.Uint64(buf[8:16])),
			FirstTerm:     decodeTermPrefix(first),
			LastTerm:      decodeTermPrefix(last),
		}
	}
	return h, descriptors, nil
}

func readFull(f *store.File, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := f.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Relocate shifts every descriptor's interval bounds by delta, the way
// copy_index.cpp's copyHeaderAndDescriptors adds
// (outputIndexSize - inputIndexSize) to intervalStart/intervalEnd when
// an index moves to a new page range.
func Relocate(descriptors []IntervalDescriptor, delta int64) []IntervalDescriptor {
	out := make([]IntervalDescriptor, len(descriptors))
	for i, d := range descriptors {
		out[i] = IntervalDescriptor{
			IntervalStart: d.IntervalStart + delta,
			IntervalEnd:   d.IntervalEnd + delta,
			FirstTerm:     d.FirstTerm,
			LastTerm:      d.LastTerm,
		}
	}
	return out
}
