// Package query compiles expression trees (spec §6.3) into extent.List
// iterator trees and drives them to completion, streaming results to a
// sink with cooperative cancellation (spec §5).
package query

import (
	"github.com/standardbeagle/extentix/internal/combinator"
	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/lexicon"
)

// NodeKind identifies the shape of an Expr node.
type NodeKind int

const (
	KindTerm NodeKind = iota
	KindAnd
	KindOr
	KindContainment
	KindFromTo
	KindOrdered
	KindOneElement
	KindRange
	KindEmpty
)

// Expr is the query surface the core accepts (spec §6.3): a tree of the
// operators in §4.5, leaf term references resolved through the lexicon,
// and the two special leaves OneElement/Range.
type Expr struct {
	Kind NodeKind

	// KindTerm
	Term string

	// KindAnd, KindOr
	Operands []*Expr

	// KindContainment
	Container       *Expr
	Containee       *Expr
	ReturnContainer bool
	Inverted        bool

	// KindFromTo
	From *Expr
	To   *Expr

	// KindOrdered
	Lists   []*Expr
	Offsets []int64
	Sizes   []int64

	// KindOneElement
	A, B int64

	// KindRange
	Width, MaxOffset int64
}

// Term builds a KindTerm leaf.
func Term(term string) *Expr { return &Expr{Kind: KindTerm, Term: term} }

// And builds a KindAnd node.
func And(operands ...*Expr) *Expr { return &Expr{Kind: KindAnd, Operands: operands} }

// Or builds a KindOr node.
func Or(operands ...*Expr) *Expr { return &Expr{Kind: KindOr, Operands: operands} }

// Contains builds a KindContainment node.
func Contains(container, containee *Expr, returnContainer, inverted bool) *Expr {
	return &Expr{Kind: KindContainment, Container: container, Containee: containee, ReturnContainer: returnContainer, Inverted: inverted}
}

// FromTo builds a KindFromTo node.
func FromTo(from, to *Expr) *Expr { return &Expr{Kind: KindFromTo, From: from, To: to} }

// Ordered builds a KindOrdered node.
func Ordered(lists []*Expr, offsets, sizes []int64) *Expr {
	return &Expr{Kind: KindOrdered, Lists: lists, Offsets: offsets, Sizes: sizes}
}

// OneElement builds a KindOneElement leaf.
func OneElement(a, b int64) *Expr { return &Expr{Kind: KindOneElement, A: a, B: b} }

// RangeExpr builds a KindRange leaf.
func RangeExpr(width, maxOffset int64) *Expr { return &Expr{Kind: KindRange, Width: width, MaxOffset: maxOffset} }

// Empty builds a KindEmpty leaf.
func Empty() *Expr { return &Expr{Kind: KindEmpty} }

// Compiler resolves term leaves against a lexicon and builds the
// extent.List iterator tree for an Expr.
type Compiler struct {
	lex *lexicon.Lexicon
}

// NewCompiler returns a Compiler resolving terms against lex.
func NewCompiler(lex *lexicon.Lexicon) *Compiler {
	return &Compiler{lex: lex}
}

// Compile builds the iterator tree for e. A term absent from the lexicon
// (and not fuzzy-expandable) silently compiles to Empty, per spec §7's
// NotFoundError -> Empty recovery.
func (c *Compiler) Compile(e *Expr) extent.List {
	switch e.Kind {
	case KindTerm:
		if list, ok := c.lex.Lookup(e.Term); ok {
			return list
		}
		return extent.Empty{}
	case KindAnd:
		return combinator.NewAnd(c.compileAll(e.Operands)...)
	case KindOr:
		return combinator.NewOr(c.compileAll(e.Operands)...)
	case KindContainment:
		return combinator.NewContainment(c.Compile(e.Container), c.Compile(e.Containee), e.ReturnContainer, e.Inverted)
	case KindFromTo:
		return combinator.NewFromTo(c.Compile(e.From), c.Compile(e.To))
	case KindOrdered:
		lists := c.compileAll(e.Lists)
		oc, err := combinator.NewOrderedCombination(lists, e.Offsets, e.Sizes)
		if err != nil {
			return extent.Empty{}
		}
		return oc
	case KindOneElement:
		return extent.NewOneElement(e.A, e.B)
	case KindRange:
		return extent.NewRange(e.Width, e.MaxOffset)
	default:
		return extent.Empty{}
	}
}

func (c *Compiler) compileAll(nodes []*Expr) []extent.List {
	out := make([]extent.List, len(nodes))
	for i, n := range nodes {
		out[i] = c.Compile(n)
	}
	return out
}
