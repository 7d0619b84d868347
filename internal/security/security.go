// Package security implements the visibility-rewrite pass of spec §4.8:
// given a set of extents the asking user is permitted to see, rewrite a
// query tree so every combinator it touches only ever returns extents
// inside that visible set (or, for the almost-secure variant, extents
// contained in some visible extent rather than necessarily identical to
// one). Grounded on the teacher's own layered-rewrite style; the
// containment algebra itself lives in internal/combinator.
package security

import (
	"github.com/standardbeagle/extentix/internal/combinator"
	"github.com/standardbeagle/extentix/internal/extent"
)

// trusted wraps the caller-supplied visible-extents list so it reports
// itself as secure by definition: "visible" is the ground truth the
// rewrite measures everything else against, not a list whose security
// is itself derived from some other visible set.
type trusted struct {
	extent.List
}

func asTrusted(visible extent.List) extent.List {
	if t, ok := visible.(trusted); ok {
		return t
	}
	return trusted{visible}
}

func (trusted) IsSecure() bool       { return true }
func (trusted) IsAlmostSecure() bool { return true }

// MakeAlmostSecure rewrites list so every returned extent is contained in
// some extent of visible, recursing into AND/OR/Containment/FromTo
// subtrees and only wrapping a node in a containment filter where
// needed (property P6: for every [s,e] returned, some [S,E] in visible
// has S<=s and e<=E).
func MakeAlmostSecure(list extent.List, visible extent.List) extent.List {
	if list.IsAlmostSecure() {
		return list
	}
	visible = asTrusted(visible)
	switch n := list.(type) {
	case *combinator.And:
		return combinator.NewAnd(rewriteAll(n.Operands(), visible)...)
	case *combinator.Or:
		return combinator.NewOr(rewriteAll(n.Operands(), visible)...)
	case *combinator.Containment:
		return combinator.NewContainment(
			MakeAlmostSecure(n.Container, visible),
			MakeAlmostSecure(n.Containee, visible),
			n.ReturnContainer, n.Inverted,
		)
	case *combinator.FromTo:
		return combinator.NewFromTo(MakeAlmostSecure(n.From, visible), MakeAlmostSecure(n.To, visible))
	default:
		return combinator.NewContainment(visible, list, false, false)
	}
}

// MakeSecure rewrites list so every returned extent is itself a visible
// extent (not merely contained in one), recursing into AND, OR and
// Containment nodes and adding an outer return_container=true containment
// at any node that isn't already secure. Unlike MakeAlmostSecure it does
// not recurse into FromTo; a FromTo node is wrapped whole.
func MakeSecure(list extent.List, visible extent.List) extent.List {
	if list.IsSecure() {
		return list
	}
	visible = asTrusted(visible)
	switch n := list.(type) {
	case *combinator.And:
		rewritten := combinator.NewAnd(rewriteAllSecure(n.Operands(), visible)...)
		if rewritten.IsSecure() {
			return rewritten
		}
		return combinator.NewContainment(visible, rewritten, true, false)
	case *combinator.Or:
		rewritten := combinator.NewOr(rewriteAllSecure(n.Operands(), visible)...)
		if rewritten.IsSecure() {
			return rewritten
		}
		return combinator.NewContainment(visible, rewritten, true, false)
	case *combinator.Containment:
		rewritten := combinator.NewContainment(
			MakeSecure(n.Container, visible),
			MakeSecure(n.Containee, visible),
			n.ReturnContainer, n.Inverted,
		)
		if rewritten.IsSecure() {
			return rewritten
		}
		return combinator.NewContainment(visible, rewritten, true, false)
	default:
		return combinator.NewContainment(visible, list, true, false)
	}
}

func rewriteAll(operands []extent.List, visible extent.List) []extent.List {
	out := make([]extent.List, len(operands))
	for i, op := range operands {
		out[i] = MakeAlmostSecure(op, visible)
	}
	return out
}

func rewriteAllSecure(operands []extent.List, visible extent.List) []extent.List {
	out := make([]extent.List, len(operands))
	for i, op := range operands {
		out[i] = MakeSecure(op, visible)
	}
	return out
}
