// Package lexicon implements the L3 term dictionary (spec §4.3): an
// in-memory, sorted-iterable map from terms to their posting lists, with
// optional stemmed-form linking and fuzzy expansion for misses.
// Grounded on original_source/index/lexicon.cpp and
// realloc_lexicon_iterator.cpp (ReallocLexicon's sorted-terms array plus
// per-term posting chunks).
package lexicon

import (
	"sort"
	"sync"

	"github.com/standardbeagle/extentix/internal/combinator"
	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

// entry is one lexicon slot: a term and its strictly increasing posting
// array, plus a link to the representative entry for its stemmed form
// (realloc_lexicon_iterator.cpp's "stemmedForm" field, used when
// STEMMING_LEVEL >= 3 to fold variant forms into one iterable list).
type entry struct {
	term        string
	postings    []int64
	stemmedForm string // Stem(term) when stemming is enabled, "" otherwise
}

// Lexicon is a concurrent-safe term dictionary. Terms map to extent lists
// of unit postings (token positions); FirstPosting/LastPosting track the
// address-space range covered, mirroring Lexicon::setIndexRange /
// extendIndexRange.
type Lexicon struct {
	mu    sync.RWMutex
	terms map[string]*entry

	firstPosting int64
	lastPosting  int64

	stemmer *Stemmer
	fuzzy   *FuzzyExpander
}

// New returns an empty lexicon. stemmer/fuzzy may be nil to disable those
// features; see NewStemmer and NewFuzzyExpander.
func New(stemmer *Stemmer, fuzzy *FuzzyExpander) *Lexicon {
	return &Lexicon{
		terms:        make(map[string]*entry),
		firstPosting: extent.MaxOffset,
		lastPosting:  0,
		stemmer:      stemmer,
		fuzzy:        fuzzy,
	}
}

// Add appends one posting for term, which must be >= the term's previous
// posting (the lexicon is built from a single forward pass over the
// token stream, spec §2).
func (l *Lexicon) Add(term string, position int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.terms[term]
	if !ok {
		e = &entry{term: term}
		if l.stemmer != nil && l.stemmer.IsEnabled() {
			e.stemmedForm = l.stemmer.Stem(term)
		}
		l.terms[term] = e
	}
	if n := len(e.postings); n > 0 && position < e.postings[n-1] {
		return &xerrors.ProtocolError{Op: "lexicon.Add", Detail: "postings must be non-decreasing within a term"}
	}
	e.postings = append(e.postings, position)

	if position < l.firstPosting {
		l.firstPosting = position
	}
	if position > l.lastPosting {
		l.lastPosting = position
	}
	return nil
}

// IndexRange returns the smallest and largest posting seen so far.
func (l *Lexicon) IndexRange() (first, last int64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.firstPosting, l.lastPosting
}

// Lookup returns the exact posting list for term. When the lexicon has
// stemming enabled and term shares a stem with other entries, the
// returned list is the OR of every entry mapping to that stem — this is
// the "stemmed form" grouping of realloc_lexicon_iterator.cpp's
// postingsFromCurrentTermFetched accounting, expressed as a combinator
// instead of a merged on-disk chunk.
func (l *Lexicon) Lookup(term string) (extent.List, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if e, ok := l.terms[term]; ok {
		return l.listFor(e), true
	}
	if l.fuzzy != nil && l.fuzzy.IsEnabled() {
		if candidate, ok := l.fuzzy.BestMatch(term, l.sortedTermsLocked()); ok {
			return l.listFor(l.terms[candidate]), true
		}
	}
	return nil, false
}

func (l *Lexicon) listFor(e *entry) extent.List {
	if l.stemmer == nil || !l.stemmer.IsEnabled() || e.stemmedForm == "" {
		return extent.NewPostingList(e.postings)
	}
	var siblings []extent.List
	for _, other := range l.terms {
		if other.stemmedForm == e.stemmedForm {
			siblings = append(siblings, extent.NewPostingList(other.postings))
		}
	}
	if len(siblings) <= 1 {
		return extent.NewPostingList(e.postings)
	}
	return combinator.NewOr(siblings...)
}

// Terms returns every term currently in the lexicon, in sorted order.
func (l *Lexicon) Terms() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedTermsLocked()
}

func (l *Lexicon) sortedTermsLocked() []string {
	out := make([]string, 0, len(l.terms))
	for t := range l.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TermCount reports the number of distinct terms.
func (l *Lexicon) TermCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.terms)
}

// Iterator walks the lexicon in lexicographic term order, mirroring
// ReallocLexiconIterator's sortTerms()-driven traversal.
type Iterator struct {
	l     *Lexicon
	terms []string
	pos   int
}

// IterateSorted returns a fresh sorted iterator over the lexicon's terms.
func (l *Lexicon) IterateSorted() *Iterator {
	return &Iterator{l: l, terms: l.Terms()}
}

// HasNext reports whether another term remains.
func (it *Iterator) HasNext() bool { return it.pos < len(it.terms) }

// Next returns the next term and its posting extent list in sorted
// order.
func (it *Iterator) Next() (string, extent.List, bool) {
	if !it.HasNext() {
		return "", nil, false
	}
	term := it.terms[it.pos]
	it.pos++
	it.l.mu.RLock()
	e := it.l.terms[term]
	list := it.l.listFor(e)
	it.l.mu.RUnlock()
	return term, list, true
}
