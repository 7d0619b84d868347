package extent

import "strings"

// PostingList is a decoded, strictly-increasing sequence of token
// positions treated as unit extents [p, p] (spec §4.6). The four oracle
// primitives reduce to two one-dimensional searches on the sorted array:
//
//	FirstStartGE(p) == FirstEndGE(p) == smallest posting >= p
//	LastStartLE(p)  == LastEndLE(p)  == largest posting <= p
//
// A cursor index is cached across probes so that galloping search from
// the cursor keeps the amortized cost near O(log d), where d is the
// distance from the previous probe target — the property that makes
// AND-of-many-clustered-terms efficient.
type PostingList struct {
	postings []int64
	cursor   int
	secure   bool
	almost   bool
}

// NewPostingList wraps an already-decoded, strictly increasing posting
// array. secure/almostSecure carry the iterator's security-grade flags
// (spec §3): a freshly decoded leaf from storage is neither secure nor
// almost-secure until a visibility collaborator wraps it (spec §4.8).
func NewPostingList(postings []int64) *PostingList {
	return &PostingList{postings: postings}
}

func (p *PostingList) indexFirstGE(target int64) int {
	n := len(p.postings)
	if n == 0 {
		return 0
	}
	cur := p.cursor
	if cur < 0 {
		cur = 0
	}
	if cur >= n {
		cur = n - 1
	}
	if p.postings[cur] >= target {
		// gallop backward
		lo, hi := 0, cur
		step := 1
		for lo < hi && p.postings[hi-step] >= target {
			hi -= step
			step *= 2
			if hi-step < lo {
				step = hi - lo
			}
		}
		return lowerBound(p.postings, lo, hi+1, target)
	}
	// gallop forward
	lo, hi := cur, cur
	step := 1
	for hi < n && p.postings[hi] < target {
		lo = hi
		hi += step
		step *= 2
	}
	if hi > n {
		hi = n
	}
	return lowerBound(p.postings, lo, hi, target)
}

// lowerBound returns the smallest index i in [lo, hi) with arr[i] >= target,
// or hi if none.
func lowerBound(arr []int64, lo, hi int, target int64) int {
	for lo < hi {
		mid := (lo + hi) / 2
		if arr[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (p *PostingList) FirstStartGE(pos int64) (Extent, bool) {
	i := p.indexFirstGE(pos)
	if i >= len(p.postings) {
		return Extent{}, false
	}
	p.cursor = i
	v := p.postings[i]
	return Extent{v, v}, true
}

func (p *PostingList) FirstEndGE(pos int64) (Extent, bool) { return p.FirstStartGE(pos) }

func (p *PostingList) LastStartLE(pos int64) (Extent, bool) {
	i := p.indexFirstGE(pos + 1)
	if i == 0 {
		return Extent{}, false
	}
	p.cursor = i - 1
	v := p.postings[i-1]
	return Extent{v, v}, true
}

func (p *PostingList) LastEndLE(pos int64) (Extent, bool) { return p.LastStartLE(pos) }

func (p *PostingList) NextN(from, to int64, n int) []Extent {
	i := p.indexFirstGE(from)
	out := make([]Extent, 0, n)
	for ; i < len(p.postings) && len(out) < n; i++ {
		v := p.postings[i]
		if v > to {
			break
		}
		out = append(out, Extent{v, v})
	}
	if len(out) > 0 {
		p.cursor = i - 1
	}
	return out
}

func (p *PostingList) Length() int64 { return int64(len(p.postings)) }

func (p *PostingList) Count(lo, hi int64) int64 {
	i := lowerBound(p.postings, 0, len(p.postings), lo)
	j := lowerBound(p.postings, 0, len(p.postings), hi+1)
	if j < i {
		return 0
	}
	return int64(j - i)
}

func (p *PostingList) MemoryUsage() int64 { return int64(len(p.postings)) * 8 }
func (p *PostingList) Optimize()          {}

func (p *PostingList) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range p.postings {
		if i > 0 {
			sb.WriteByte(',')
		}
		if i >= 8 {
			sb.WriteString("...")
			break
		}
		sb.WriteString(itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (p *PostingList) IsSecure() bool       { return p.secure }
func (p *PostingList) IsAlmostSecure() bool { return p.almost || p.secure }

// SetSecurityFlags lets a visibility collaborator (or the index builder,
// for a fully public document) mark this leaf's security grade directly.
func (p *PostingList) SetSecurityFlags(secure, almostSecure bool) {
	p.secure = secure
	p.almost = almostSecure
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
