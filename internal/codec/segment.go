package codec

// Segment thresholds (spec §4.2). A term's postings are partitioned into
// segments: TargetSegmentSize is the preferred count per segment,
// MaxSegmentSize the hard ceiling.
const (
	TargetSegmentSize = 4096
	MaxSegmentSize    = 8192
)

// Header describes one on-disk posting-list segment.
type Header struct {
	PostingCount int64  // number of postings in this segment
	ByteLength   int64  // exact bytes of compressed payload
	FirstElement uint64 // first posting, absolute, uncompressed
	LastElement  uint64 // last posting, absolute, uncompressed
	Checksum     uint64 // xxhash64 of the payload (internal/store wiring)
}

// Segment pairs a Header with its compressed payload.
type Segment struct {
	Header  Header
	Payload []byte
}

// EncodeSegment compresses seq (a strictly increasing run of postings)
// into a single Segment.
func EncodeSegment(seq []uint64, checksum func([]byte) uint64) Segment {
	payload := EncodeDeltaVByte(seq)
	h := Header{
		PostingCount: int64(len(seq)),
		ByteLength:   int64(len(payload)),
	}
	if len(seq) > 0 {
		h.FirstElement = seq[0]
		h.LastElement = seq[len(seq)-1]
	}
	if checksum != nil {
		h.Checksum = checksum(payload)
	}
	return Segment{Header: h, Payload: payload}
}

// Decode decompresses the segment's payload back into postings.
func (s Segment) Decode() ([]uint64, error) {
	return DecodeDeltaVByte(s.Payload, int(s.Header.PostingCount))
}

// MayContain reports whether a probe target could possibly lie within
// this segment, using only the header (no decompression) — spec §4.6's
// lazy-decode optimization for on-disk leaf lists.
func (h Header) MayContain(target uint64) bool {
	return target >= h.FirstElement && target <= h.LastElement
}

// SplitSizes partitions a total posting count into segment sizes
// following spec §4.2's splitting rule: if the remainder fits within one
// MaxSegmentSize segment, take it whole; if the remainder comfortably
// exceeds Target+Max, cut exactly Target; otherwise split the remainder
// in half to avoid a tiny tail segment.
func SplitSizes(total int) []int {
	var sizes []int
	remaining := total
	for remaining > 0 {
		switch {
		case remaining <= MaxSegmentSize:
			sizes = append(sizes, remaining)
			remaining = 0
		case remaining > TargetSegmentSize+MaxSegmentSize:
			sizes = append(sizes, TargetSegmentSize)
			remaining -= TargetSegmentSize
		default:
			half := remaining / 2
			sizes = append(sizes, half)
			remaining -= half
		}
	}
	return sizes
}

// EncodeSegments splits seq into segments following SplitSizes and
// encodes each one.
func EncodeSegments(seq []uint64, checksum func([]byte) uint64) []Segment {
	sizes := SplitSizes(len(seq))
	segments := make([]Segment, 0, len(sizes))
	off := 0
	for _, n := range sizes {
		segments = append(segments, EncodeSegment(seq[off:off+n], checksum))
		off += n
	}
	return segments
}
