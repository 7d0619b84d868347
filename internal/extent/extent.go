// Package extent implements the L4 extent-list iterator interface: the
// four oracle navigation primitives every leaf and combinator must
// support, plus the concrete leaf types (posting list, OneElement, Range,
// Empty). See spec §4.4 and §4.6.
package extent

// MaxOffset is the supremum of the token-position address space: an
// unreachable sentinel used as "past the end" when passed as an argument.
const MaxOffset = int64(1)<<62 - 1

// Extent is a half-open... no, an *inclusive* pair [Start, End] of token
// positions (spec §3: "the inclusive range of token positions").
type Extent struct {
	Start int64
	End   int64
}

// List is the uniform interface implemented by every leaf and combinator
// in the extent-list algebra. All four primitives return ok=false iff no
// such extent exists.
type List interface {
	// FirstStartGE returns the extent with the minimum index i such that
	// Start_i >= p.
	FirstStartGE(p int64) (Extent, bool)
	// FirstEndGE returns the extent with the minimum index i such that
	// End_i >= p.
	FirstEndGE(p int64) (Extent, bool)
	// LastStartLE returns the extent with the maximum index i such that
	// Start_i <= p.
	LastStartLE(p int64) (Extent, bool)
	// LastEndLE returns the extent with the maximum index i such that
	// End_i <= p.
	LastEndLE(p int64) (Extent, bool)

	// NextN returns up to n extents with Start >= from and End <= to, in
	// order, starting the scan from "from".
	NextN(from, to int64, n int) []Extent

	// Length returns the total extent count (may require a full scan).
	Length() int64
	// Count returns the number of extents fully inside [lo, hi].
	Count(lo, hi int64) int64
	// MemoryUsage is a diagnostic estimate of in-memory footprint.
	MemoryUsage() int64
	// Optimize is an idempotent hint; combinators forward it to children.
	Optimize()
	// String renders a diagnostic form of the list (and its children).
	String() string

	// IsSecure guarantees every returned extent is visible to the asking
	// user without further filtering.
	IsSecure() bool
	// IsAlmostSecure guarantees every returned extent is contained in
	// some visible extent; weaker than IsSecure.
	IsAlmostSecure() bool
}

// NextNGeneric implements the default bulk-fetch primitive in terms of
// FirstStartGE, for List implementations that have no cheaper bulk path.
func NextNGeneric(l List, from, to int64, n int) []Extent {
	out := make([]Extent, 0, n)
	pos := from
	for len(out) < n {
		e, ok := l.FirstStartGE(pos)
		if !ok || e.End > to {
			break
		}
		out = append(out, e)
		pos = e.Start + 1
	}
	return out
}

// CountGeneric implements Count in terms of FirstStartGE, for List
// implementations that have no cheaper counting path.
func CountGeneric(l List, lo, hi int64) int64 {
	var n int64
	pos := lo
	for {
		e, ok := l.FirstStartGE(pos)
		if !ok || e.Start < lo || e.End > hi {
			break
		}
		n++
		pos = e.Start + 1
	}
	return n
}

// LengthGeneric implements Length by scanning from the beginning, for List
// implementations with no cheaper closed-form count.
func LengthGeneric(l List) int64 {
	var n int64
	pos := int64(0)
	for {
		e, ok := l.FirstStartGE(pos)
		if !ok {
			break
		}
		n++
		pos = e.Start + 1
	}
	return n
}
