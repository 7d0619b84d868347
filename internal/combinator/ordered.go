package combinator

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

// OrderedCombination concatenates a sequence of sub-lists that partition
// the address space into disjoint, ordered windows: sub-list i owns
// [offsets[i], offsets[i]+sizes[i]), and offsets[i+1] must not fall inside
// that window. Each sub-list's own coordinates are local to its window and
// are translated by the window's offset on the way out. sizes is supplied
// by the caller (e.g. per-document token counts, or per-segment address
// spans) rather than derived from Length(), which counts extents, not
// address span.
//
// This underlies segment-at-a-time merging (spec §4.2/§4.6): one sub-list
// per decoded segment, concatenated without re-decoding into one flat
// address space.
type OrderedCombination struct {
	lists   []extent.List
	offsets []int64
	sizes   []int64
	current int
}

// NewOrderedCombination validates the disjoint-ordered-partition
// precondition and returns a combinator over it, or a ProtocolError if the
// windows overlap or are out of order.
func NewOrderedCombination(lists []extent.List, offsets []int64, sizes []int64) (*OrderedCombination, error) {
	if len(lists) != len(offsets) || len(lists) != len(sizes) {
		return nil, &xerrors.ProtocolError{Op: "NewOrderedCombination", Detail: "lists, offsets and sizes must have equal length"}
	}
	for i := 0; i < len(offsets); i++ {
		if i > 0 && offsets[i] < offsets[i-1] {
			return nil, &xerrors.ProtocolError{Op: "NewOrderedCombination", Detail: fmt.Sprintf("offsets[%d]=%d precedes offsets[%d]=%d", i, offsets[i], i-1, offsets[i-1])}
		}
		if i+1 < len(offsets) {
			windowEnd := offsets[i] + sizes[i]
			if windowEnd > offsets[i+1] {
				return nil, &xerrors.ProtocolError{Op: "NewOrderedCombination", Detail: fmt.Sprintf("sub-list %d window [%d,%d) overlaps offset[%d]=%d", i, offsets[i], windowEnd, i+1, offsets[i+1])}
			}
		}
	}
	return &OrderedCombination{lists: lists, offsets: offsets, sizes: sizes}, nil
}

// indexAt returns the index of the window containing position, or the
// first window at or after it, starting the scan from the cached current
// index for locality when successive probes walk forward together.
func (oc *OrderedCombination) indexAt(position int64) int {
	i := oc.current
	if i < 0 || i >= len(oc.offsets) {
		i = 0
	}
	for i > 0 && oc.offsets[i] > position {
		i--
	}
	for i < len(oc.offsets)-1 && oc.offsets[i+1] <= position {
		i++
	}
	return i
}

func (oc *OrderedCombination) FirstStartGE(position int64) (extent.Extent, bool) {
	for i := oc.indexAt(position); i < len(oc.lists); i++ {
		local := position - oc.offsets[i]
		if local < 0 {
			local = 0
		}
		if e, ok := oc.lists[i].FirstStartGE(local); ok {
			oc.current = i
			return extent.Extent{Start: e.Start + oc.offsets[i], End: e.End + oc.offsets[i]}, true
		}
	}
	return extent.Extent{}, false
}

func (oc *OrderedCombination) FirstEndGE(position int64) (extent.Extent, bool) {
	for i := oc.indexAt(position); i < len(oc.lists); i++ {
		local := position - oc.offsets[i]
		if local < 0 {
			local = 0
		}
		if e, ok := oc.lists[i].FirstEndGE(local); ok {
			oc.current = i
			return extent.Extent{Start: e.Start + oc.offsets[i], End: e.End + oc.offsets[i]}, true
		}
	}
	return extent.Extent{}, false
}

func (oc *OrderedCombination) LastStartLE(position int64) (extent.Extent, bool) {
	for i := oc.indexAt(position); i >= 0; i-- {
		local := position - oc.offsets[i]
		if maxLocal := oc.sizes[i] - 1; local > maxLocal {
			local = maxLocal
		}
		if local < 0 {
			continue
		}
		if e, ok := oc.lists[i].LastStartLE(local); ok {
			oc.current = i
			return extent.Extent{Start: e.Start + oc.offsets[i], End: e.End + oc.offsets[i]}, true
		}
	}
	return extent.Extent{}, false
}

func (oc *OrderedCombination) LastEndLE(position int64) (extent.Extent, bool) {
	for i := oc.indexAt(position); i >= 0; i-- {
		local := position - oc.offsets[i]
		if maxLocal := oc.sizes[i] - 1; local > maxLocal {
			local = maxLocal
		}
		if local < 0 {
			continue
		}
		if e, ok := oc.lists[i].LastEndLE(local); ok {
			oc.current = i
			return extent.Extent{Start: e.Start + oc.offsets[i], End: e.End + oc.offsets[i]}, true
		}
	}
	return extent.Extent{}, false
}

func (oc *OrderedCombination) NextN(from, to int64, n int) []extent.Extent {
	return extent.NextNGeneric(oc, from, to, n)
}

// Length returns the total extent count across all windows (spec §4.4's
// definition of Length, not the address span covered by sizes).
func (oc *OrderedCombination) Length() int64 {
	var total int64
	for _, l := range oc.lists {
		total += l.Length()
	}
	return total
}

func (oc *OrderedCombination) Count(lo, hi int64) int64 {
	return extent.CountGeneric(oc, lo, hi)
}

func (oc *OrderedCombination) MemoryUsage() int64 {
	var total int64
	for _, l := range oc.lists {
		total += l.MemoryUsage()
	}
	return total
}

func (oc *OrderedCombination) Optimize() {
	for _, l := range oc.lists {
		l.Optimize()
	}
}

func (oc *OrderedCombination) IsSecure() bool {
	for _, l := range oc.lists {
		if !l.IsSecure() {
			return false
		}
	}
	return true
}

func (oc *OrderedCombination) IsAlmostSecure() bool {
	for _, l := range oc.lists {
		if !l.IsAlmostSecure() {
			return false
		}
	}
	return true
}

func (oc *OrderedCombination) String() string {
	var sb strings.Builder
	sb.WriteString("{ordered:")
	for i, l := range oc.lists {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
