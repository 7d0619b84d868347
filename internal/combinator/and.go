// Package combinator implements the L5 extent-list combinators: AND, OR,
// Containment, FromTo, OrderedCombination, built on top of the L4
// extent.List interface. Each combinator's four navigation primitives are
// derived directly from its semantic definition in spec §4.5, following
// the leap-frog / containment-memoization algorithms of the original
// positional-retrieval engine this module generalizes.
package combinator

import (
	"strings"

	"github.com/standardbeagle/extentix/internal/extent"
)

// And is the k-way AND combinator. An extent [s,e] is in the output iff
// every operand has some extent fully inside [s,e], and [s,e] is the
// tightest such interval. Implemented via leap-frog synchronization: widen
// e to the max end of the next extent at or after the probe on every
// child, then contract s to the min of last_end_le(e) starts across
// children. One widen pass and one contract pass are made; no further
// rounds are run.
type And struct {
	operands []extent.List
}

// NewAnd builds an AND over the given operands. Nested ANDs are flattened
// into a single k-way node first (spec §4.5's flatten optimization),
// preserving semantics per property P5.
func NewAnd(operands ...extent.List) *And {
	flat := make([]extent.List, 0, len(operands))
	for _, op := range operands {
		if nested, ok := op.(*And); ok {
			flat = append(flat, nested.operands...)
		} else {
			flat = append(flat, op)
		}
	}
	return &And{operands: flat}
}

func (a *And) FirstStartGE(position int64) (extent.Extent, bool) {
	lastEnd := position - 1
	for _, op := range a.operands {
		e, ok := op.FirstStartGE(position)
		if !ok {
			return extent.Extent{}, false
		}
		if e.End > lastEnd {
			lastEnd = e.End
		}
	}
	firstStart := lastEnd
	for _, op := range a.operands {
		e, ok := op.LastEndLE(lastEnd)
		if !ok {
			return extent.Extent{}, false
		}
		if e.Start < firstStart {
			firstStart = e.Start
		}
	}
	return extent.Extent{Start: firstStart, End: lastEnd}, true
}

func (a *And) FirstEndGE(position int64) (extent.Extent, bool) {
	s, ok := a.LastEndLE(position - 1)
	start := int64(-1)
	if ok {
		start = s.Start
	}
	return a.FirstStartGE(start + 1)
}

func (a *And) LastStartLE(position int64) (extent.Extent, bool) {
	e, ok := a.FirstStartGE(position + 1)
	end := extent.MaxOffset
	if ok {
		end = e.End
	}
	return a.LastEndLE(end - 1)
}

func (a *And) LastEndLE(position int64) (extent.Extent, bool) {
	firstStart := position + 1
	for _, op := range a.operands {
		e, ok := op.LastEndLE(position)
		if !ok {
			return extent.Extent{}, false
		}
		if e.Start < firstStart {
			firstStart = e.Start
		}
	}
	lastEnd := firstStart
	for _, op := range a.operands {
		e, ok := op.FirstStartGE(firstStart)
		if !ok {
			return extent.Extent{}, false
		}
		if e.End > lastEnd {
			lastEnd = e.End
		}
	}
	return extent.Extent{Start: firstStart, End: lastEnd}, true
}

func (a *And) NextN(from, to int64, n int) []extent.Extent {
	return extent.NextNGeneric(a, from, to, n)
}

func (a *And) Length() int64 { return extent.LengthGeneric(a) }

func (a *And) Count(lo, hi int64) int64 { return extent.CountGeneric(a, lo, hi) }

func (a *And) MemoryUsage() int64 {
	var total int64
	for _, op := range a.operands {
		total += op.MemoryUsage()
	}
	return total
}

func (a *And) Optimize() {
	for _, op := range a.operands {
		op.Optimize()
	}
}

// IsSecure is always false: AND cannot guarantee visibility of the
// combined extent without a containment rewrite.
func (a *And) IsSecure() bool { return false }

// IsAlmostSecure holds iff every operand is almost-secure.
func (a *And) IsAlmostSecure() bool {
	for _, op := range a.operands {
		if !op.IsAlmostSecure() {
			return false
		}
	}
	return true
}

func (a *And) String() string {
	if len(a.operands) == 1 {
		return a.operands[0].String()
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, op := range a.operands {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(op.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Operands exposes the flattened child list, used by the security
// rewrite (internal/security) and by tests asserting property P5.
func (a *And) Operands() []extent.List { return a.operands }
