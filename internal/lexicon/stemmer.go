package lexicon

import (
	"strings"

	"github.com/surgebase/porter2"
)

// Stemmer normalizes terms to their Porter2 stem so the lexicon can group
// morphological variants ("index", "indexing", "indexed") under one
// stemmed form, per spec §4.3's stemming level. Grounded on the teacher's
// internal/semantic/stemmer.go wrapper around porter2.Stem.
type Stemmer struct {
	enabled    bool
	minLength  int
	exclusions map[string]bool
}

// NewStemmer returns a Stemmer; words shorter than minLength or present
// in exclusions are returned unchanged by Stem.
func NewStemmer(enabled bool, minLength int, exclusions map[string]bool) *Stemmer {
	if minLength < 0 {
		minLength = 3
	}
	if exclusions == nil {
		exclusions = make(map[string]bool)
	}
	return &Stemmer{enabled: enabled, minLength: minLength, exclusions: exclusions}
}

// IsEnabled reports whether stemming is active.
func (s *Stemmer) IsEnabled() bool { return s != nil && s.enabled }

// Stem returns word's Porter2 stem, or word itself if stemming is
// disabled, the word is excluded, or it's shorter than the minimum
// length configured for stemming.
func (s *Stemmer) Stem(word string) string {
	if s == nil || !s.enabled {
		return word
	}
	if s.exclusions[strings.ToLower(word)] {
		return word
	}
	if len(word) < s.minLength {
		return word
	}
	return porter2.Stem(word)
}
