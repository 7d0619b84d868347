package lexicon

import "github.com/hbollon/go-edlib"

// FuzzyExpander proposes a near-miss lexicon term for a query term absent
// from the dictionary, so a typo doesn't fall straight through to
// NotFoundError/Empty. Grounded on the teacher's
// internal/semantic/fuzzy_matcher.go, generalized from "match against a
// candidate list" to "match against the live lexicon".
type FuzzyExpander struct {
	enabled   bool
	threshold float32
	algorithm edlib.Algorithm
}

// NewFuzzyExpander returns a FuzzyExpander using algorithm (e.g.
// edlib.JaroWinkler) with a minimum similarity threshold in [0,1].
func NewFuzzyExpander(enabled bool, threshold float32, algorithm edlib.Algorithm) *FuzzyExpander {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &FuzzyExpander{enabled: enabled, threshold: threshold, algorithm: algorithm}
}

// IsEnabled reports whether fuzzy expansion is active.
func (f *FuzzyExpander) IsEnabled() bool { return f != nil && f.enabled }

// BestMatch scans candidates for the one most similar to term, returning
// it if its similarity clears the configured threshold.
func (f *FuzzyExpander) BestMatch(term string, candidates []string) (string, bool) {
	if f == nil || !f.enabled || len(candidates) == 0 {
		return "", false
	}
	best := ""
	bestScore := float32(0)
	for _, candidate := range candidates {
		score, err := edlib.StringsSimilarity(term, candidate, f.algorithm)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < f.threshold {
		return "", false
	}
	return best, true
}
