package combinator

import (
	"strings"

	"github.com/standardbeagle/extentix/internal/extent"
)

// Or is the classical union combinator with duplicate suppression, ties
// broken lexicographically by (start, end) (spec §4.5).
type Or struct {
	operands []extent.List
}

func NewOr(operands ...extent.List) *Or {
	flat := make([]extent.List, 0, len(operands))
	for _, op := range operands {
		if nested, ok := op.(*Or); ok {
			flat = append(flat, nested.operands...)
		} else {
			flat = append(flat, op)
		}
	}
	return &Or{operands: flat}
}

func lexLess(a, b extent.Extent) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

func (o *Or) FirstStartGE(position int64) (extent.Extent, bool) {
	var best extent.Extent
	found := false
	for _, op := range o.operands {
		e, ok := op.FirstStartGE(position)
		if !ok {
			continue
		}
		if !found || lexLess(e, best) {
			best = e
			found = true
		}
	}
	return best, found
}

func (o *Or) FirstEndGE(position int64) (extent.Extent, bool) {
	var best extent.Extent
	found := false
	for _, op := range o.operands {
		e, ok := op.FirstEndGE(position)
		if !ok {
			continue
		}
		if !found || e.End < best.End || (e.End == best.End && e.Start < best.Start) {
			best = e
			found = true
		}
	}
	return best, found
}

func (o *Or) LastStartLE(position int64) (extent.Extent, bool) {
	var best extent.Extent
	found := false
	for _, op := range o.operands {
		e, ok := op.LastStartLE(position)
		if !ok {
			continue
		}
		if !found || e.Start > best.Start || (e.Start == best.Start && e.End > best.End) {
			best = e
			found = true
		}
	}
	return best, found
}

func (o *Or) LastEndLE(position int64) (extent.Extent, bool) {
	var best extent.Extent
	found := false
	for _, op := range o.operands {
		e, ok := op.LastEndLE(position)
		if !ok {
			continue
		}
		if !found || e.End > best.End || (e.End == best.End && e.Start > best.Start) {
			best = e
			found = true
		}
	}
	return best, found
}

func (o *Or) NextN(from, to int64, n int) []extent.Extent {
	return extent.NextNGeneric(o, from, to, n)
}

func (o *Or) Length() int64 { return extent.LengthGeneric(o) }

func (o *Or) Count(lo, hi int64) int64 { return extent.CountGeneric(o, lo, hi) }

func (o *Or) MemoryUsage() int64 {
	var total int64
	for _, op := range o.operands {
		total += op.MemoryUsage()
	}
	return total
}

func (o *Or) Optimize() {
	for _, op := range o.operands {
		op.Optimize()
	}
}

func (o *Or) IsSecure() bool {
	for _, op := range o.operands {
		if !op.IsSecure() {
			return false
		}
	}
	return true
}

func (o *Or) IsAlmostSecure() bool {
	for _, op := range o.operands {
		if !op.IsAlmostSecure() {
			return false
		}
	}
	return true
}

func (o *Or) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, op := range o.operands {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString(op.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (o *Or) Operands() []extent.List { return o.operands }
