package extent

import "fmt"

// Range is the infinite family of sliding windows [p, p+w-1] for p in
// [0, maxOffset-w+1] (spec §4.5: length() = maxOffset - w + 2 when w > 0).
// Purely computed; no storage.
type Range struct {
	Width     int64
	MaxOffset int64
}

func NewRange(width, maxOffset int64) *Range { return &Range{Width: width, MaxOffset: maxOffset} }

// lastStart is the largest valid window start: maxOffset - width + 1.
func (r *Range) lastStart() int64 { return r.MaxOffset - r.Width + 1 }

func (r *Range) FirstStartGE(p int64) (Extent, bool) {
	if r.Width <= 0 {
		return Extent{}, false
	}
	if p < 0 {
		p = 0
	}
	if p > r.lastStart() {
		return Extent{}, false
	}
	return Extent{p, p + r.Width - 1}, true
}

func (r *Range) FirstEndGE(p int64) (Extent, bool) {
	if r.Width <= 0 {
		return Extent{}, false
	}
	// end = start + width - 1 >= p  =>  start >= p - width + 1
	start := p - r.Width + 1
	if start < 0 {
		start = 0
	}
	if start > r.lastStart() {
		return Extent{}, false
	}
	return Extent{start, start + r.Width - 1}, true
}

func (r *Range) LastStartLE(p int64) (Extent, bool) {
	if r.Width <= 0 || p < 0 {
		return Extent{}, false
	}
	if p > r.lastStart() {
		p = r.lastStart()
	}
	return Extent{p, p + r.Width - 1}, true
}

func (r *Range) LastEndLE(p int64) (Extent, bool) {
	if r.Width <= 0 {
		return Extent{}, false
	}
	start := p - r.Width + 1
	if start > r.lastStart() {
		start = r.lastStart()
	}
	if start < 0 {
		return Extent{}, false
	}
	return Extent{start, start + r.Width - 1}, true
}

func (r *Range) NextN(from, to int64, n int) []Extent { return NextNGeneric(r, from, to, n) }

func (r *Range) Length() int64 {
	if r.Width <= 0 {
		return 0
	}
	return r.MaxOffset - r.Width + 2
}

func (r *Range) Count(lo, hi int64) int64 {
	if r.Width <= 0 {
		return 0
	}
	n := (hi - lo + 1) - (r.Width - 1)
	if n <= 0 {
		return 0
	}
	return n
}

func (r *Range) MemoryUsage() int64   { return 16 }
func (r *Range) Optimize()            {}
func (r *Range) String() string       { return fmt.Sprintf("[width=%d]", r.Width) }
func (r *Range) IsSecure() bool       { return false }
func (r *Range) IsAlmostSecure() bool { return true }
