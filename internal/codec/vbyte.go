// Package codec implements the L2 posting-list codec: delta encoding
// followed by byte-aligned variable-byte compression, and the segment
// format that groups compressed postings under a header.
package codec

import (
	"github.com/standardbeagle/extentix/internal/xerrors"
)

// EncodeDeltaVByte encodes a strictly increasing, non-negative sequence of
// postings as delta + variable-byte bytes: d0 = seq[0], di = seq[i] -
// seq[i-1] for i>0; each delta is emitted 7 bits at a time, low bits
// first, with the continuation bit (MSB) set on every byte but the last
// one for that delta.
func EncodeDeltaVByte(seq []uint64) []byte {
	out := make([]byte, 0, len(seq)*2)
	var prev uint64
	for i, p := range seq {
		var d uint64
		if i == 0 {
			d = p
		} else {
			d = p - prev
		}
		out = appendVByte(out, d)
		prev = p
	}
	return out
}

func appendVByte(out []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// DecodeDeltaVByte decodes a byte stream produced by EncodeDeltaVByte back
// into the strictly-increasing posting sequence. n is the exact number of
// postings to decode (taken from the segment header's postingCount,
// letting decode stop at any segment boundary without a terminator byte).
func DecodeDeltaVByte(data []byte, n int) ([]uint64, error) {
	out := make([]uint64, 0, n)
	var prev uint64
	pos := 0
	for i := 0; i < n; i++ {
		d, consumed, err := readVByte(data, pos)
		if err != nil {
			return nil, &xerrors.CodecError{Op: "DecodeDeltaVByte", Offset: int64(pos), Err: err}
		}
		pos += consumed
		var p uint64
		if i == 0 {
			p = d
		} else {
			p = prev + d
		}
		out = append(out, p)
		prev = p
	}
	return out, nil
}

func readVByte(data []byte, pos int) (uint64, int, error) {
	var v uint64
	var shift uint
	start := pos
	for {
		if pos >= len(data) {
			return 0, 0, errTruncated
		}
		b := data[pos]
		pos++
		v |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 63 {
			return 0, 0, errOverflow
		}
	}
	return v, pos - start, nil
}

// EncodedLen returns the number of bytes EncodeDeltaVByte would emit for
// seq, without allocating the output.
func EncodedLen(seq []uint64) int {
	n := 0
	var prev uint64
	for i, p := range seq {
		var d uint64
		if i == 0 {
			d = p
		} else {
			d = p - prev
		}
		n += vByteLen(d)
		prev = p
	}
	return n
}

func vByteLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

var (
	errTruncated = simpleError("vbyte: truncated input")
	errOverflow  = simpleError("vbyte: delta overflows 64 bits")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
