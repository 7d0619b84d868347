// Package astransform implements address-space transformation: rewriting
// already-indexed postings when a document's token-position range moves
// (an append to an existing file, or a compaction that shifts later
// documents down to reclaim a deleted one's range). Grounded on
// original_source/extentlist/address_space_transformation.{h,cpp}.
package astransform

import "sort"

// Rule maps [Source, Source+Length) onto [Destination, Destination+Length).
type Rule struct {
	Source      int64
	Destination int64
	Length      int64
}

// Transformation is an immutable, sorted-by-source set of non-overlapping
// rules, queryable with a galloping search the same way the original's
// transformSequence locates the rule for each posting.
type Transformation struct {
	rules []Rule
}

// New builds a Transformation from rules, dropping zero-length entries
// and sorting by Source (mirrors the constructor's compaction pass plus
// invert()'s qsort by source).
func New(rules []Rule) *Transformation {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Length > 0 {
			kept = append(kept, r)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Source < kept[j].Source })
	return &Transformation{rules: kept}
}

// Invert returns the transformation that maps destinations back to
// sources.
func (t *Transformation) Invert() *Transformation {
	inverted := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		inverted[i] = Rule{Source: r.Destination, Destination: r.Source, Length: r.Length}
	}
	return New(inverted)
}

// ruleFor returns the index of the rule covering position p, or -1 if
// none applies, using a galloping search from prevRule the way
// transformSequence does for a run of nearby postings.
func (t *Transformation) ruleFor(p int64, prevRule int) int {
	n := len(t.rules)
	if n == 0 {
		return -1
	}
	if prevRule < 0 || prevRule >= n {
		prevRule = 0
	}
	if p < t.rules[prevRule].Source+t.rules[prevRule].Length && p >= t.rules[prevRule].Source {
		return prevRule
	}
	lower, delta := prevRule, 1
	for lower+delta < n && t.rules[lower+delta].Source+t.rules[lower+delta].Length <= p {
		delta *= 2
		if lower+delta >= n {
			delta = n - 1 - lower
			break
		}
	}
	upper := lower + delta
	if upper >= n {
		upper = n - 1
	}
	for lower < upper {
		middle := (lower + upper + 1) >> 1
		if t.rules[middle].Source > p {
			upper = middle - 1
		} else {
			lower = middle
		}
	}
	if p >= t.rules[lower].Source && p < t.rules[lower].Source+t.rules[lower].Length {
		return lower
	}
	return -1
}

// TransformSequence rewrites postings in place according to the rules,
// leaving untouched any posting with no applicable rule, then restores
// ascending order (a transformation can permute relative order across
// rule boundaries).
func (t *Transformation) TransformSequence(postings []int64) {
	if len(postings) == 0 || len(t.rules) == 0 {
		return
	}
	first := t.rules[0].Source
	last := t.rules[len(t.rules)-1].Source + t.rules[len(t.rules)-1].Length - 1

	start := 0
	for start < len(postings) && postings[start] < first {
		start++
	}
	prevRule := 0
	for i := start; i < len(postings) && postings[i] <= last; i++ {
		p := postings[i]
		if idx := t.ruleFor(p, prevRule); idx >= 0 {
			prevRule = idx
			postings[i] = p + t.rules[idx].Destination - t.rules[idx].Source
		}
	}
	if len(postings) > 1 {
		sort.Slice(postings, func(i, j int) bool { return postings[i] < postings[j] })
	}
}

// Apply returns a new slice with the transformation applied, leaving the
// input untouched.
func (t *Transformation) Apply(postings []int64) []int64 {
	out := make([]int64, len(postings))
	copy(out, postings)
	t.TransformSequence(out)
	return out
}
