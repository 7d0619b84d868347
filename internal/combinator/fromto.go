package combinator

import (
	"fmt"

	"github.com/standardbeagle/extentix/internal/extent"
)

// FromTo implements the "A..B" combinator of spec §4.5: the extent starts
// where some From-extent starts and ends at the nearest End of a To-extent
// that begins strictly after the From-extent ends. Both sides scan forward
// (or backward) from a probe position until a compatible pair is found or
// one side is exhausted.
type FromTo struct {
	From extent.List
	To   extent.List
}

func NewFromTo(from, to extent.List) *FromTo {
	return &FromTo{From: from, To: to}
}

// nearestTo returns the first To-extent starting strictly after a ends —
// the one and only To-extent a given From-extent pairs with.
func (f *FromTo) nearestTo(a extent.Extent) (extent.Extent, bool) {
	return f.To.FirstStartGE(a.End + 1)
}

// FirstStartGE needs no retry: as a moves forward its nearestTo can only
// move forward or fail for good, so the first From-extent at or after
// position either pairs immediately or nothing later will.
func (f *FromTo) FirstStartGE(position int64) (extent.Extent, bool) {
	a, ok := f.From.FirstStartGE(position)
	if !ok {
		return extent.Extent{}, false
	}
	b, ok := f.nearestTo(a)
	if !ok {
		return extent.Extent{}, false
	}
	return extent.Extent{Start: a.Start, End: b.End}, true
}

// LastStartLE does need retry: a later (closer to position) From-extent
// may have no nearestTo while an earlier one does, so failures walk
// backward through From looking for one that pairs.
func (f *FromTo) LastStartLE(position int64) (extent.Extent, bool) {
	for {
		a, ok := f.From.LastStartLE(position)
		if !ok {
			return extent.Extent{}, false
		}
		b, ok := f.nearestTo(a)
		if !ok {
			position = a.Start - 1
			continue
		}
		return extent.Extent{Start: a.Start, End: b.End}, true
	}
}

// FirstEndGE seeds a candidate From-extent from the nearest qualifying
// To-extent, then walks forward through From verifying each candidate's
// true nearestTo pairing until one reaches position or From is exhausted.
func (f *FromTo) FirstEndGE(position int64) (extent.Extent, bool) {
	a, ok := f.seedFrom(position, true)
	if !ok {
		return extent.Extent{}, false
	}
	for {
		b, ok := f.nearestTo(a)
		if !ok {
			return extent.Extent{}, false
		}
		if b.End >= position {
			return extent.Extent{Start: a.Start, End: b.End}, true
		}
		next, ok := f.From.FirstStartGE(a.Start + 1)
		if !ok {
			return extent.Extent{}, false
		}
		a = next
	}
}

// LastEndLE mirrors FirstEndGE: seeds near position, then walks forward
// keeping the last candidate whose pairing still satisfies end<=position.
func (f *FromTo) LastEndLE(position int64) (extent.Extent, bool) {
	a, ok := f.seedFrom(position, false)
	if !ok {
		return extent.Extent{}, false
	}
	var best extent.Extent
	found := false
	for {
		b, ok := f.nearestTo(a)
		if !ok || b.End > position {
			break
		}
		best, found = extent.Extent{Start: a.Start, End: b.End}, true
		next, ok := f.From.FirstStartGE(a.Start + 1)
		if !ok {
			break
		}
		a = next
	}
	return best, found
}

// seedFrom picks a starting From-extent close to the answer for the given
// query position: the last From-extent ending before the nearest
// qualifying To-extent starts, falling back to From's very first extent
// when no such To-extent exists yet.
func (f *FromTo) seedFrom(position int64, forward bool) (extent.Extent, bool) {
	var to extent.Extent
	var ok bool
	if forward {
		to, ok = f.To.FirstEndGE(position)
	} else {
		to, ok = f.To.LastEndLE(position)
	}
	if ok {
		if a, aok := f.From.LastEndLE(to.Start - 1); aok {
			return a, true
		}
	}
	return f.From.FirstStartGE(0)
}

func (f *FromTo) NextN(from, to int64, n int) []extent.Extent {
	return extent.NextNGeneric(f, from, to, n)
}

func (f *FromTo) Length() int64 { return extent.LengthGeneric(f) }

func (f *FromTo) Count(lo, hi int64) int64 { return extent.CountGeneric(f, lo, hi) }

func (f *FromTo) MemoryUsage() int64 {
	return f.From.MemoryUsage() + f.To.MemoryUsage()
}

func (f *FromTo) Optimize() {
	f.From.Optimize()
	f.To.Optimize()
}

func (f *FromTo) IsSecure() bool { return false }

func (f *FromTo) IsAlmostSecure() bool {
	return f.From.IsAlmostSecure() && f.To.IsAlmostSecure()
}

func (f *FromTo) String() string {
	return fmt.Sprintf("(%s .. %s)", f.From.String(), f.To.String())
}
