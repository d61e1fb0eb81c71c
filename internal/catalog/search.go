package catalog

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultFuzzyThreshold is the minimum similarity for a fuzzy token match.
const DefaultFuzzyThreshold = 0.7

// Search modes accepted by NewMatcher.
const (
	SearchExact = "exact"
	SearchFuzzy = "fuzzy"
)

// Matcher decides whether a record's search blob satisfies a query. Both
// arguments are lowercase; the query is trimmed and non-empty.
type Matcher interface {
	Match(blob, query string) bool
}

// NewMatcher returns the matcher for the named mode.
func NewMatcher(mode string, threshold float64) (Matcher, error) {
	switch strings.ToLower(mode) {
	case SearchExact:
		return ExactMatcher{}, nil
	case "", SearchFuzzy:
		return NewFuzzyMatcher(threshold), nil
	}
	return nil, fmt.Errorf("unknown search mode %q", mode)
}

// ExactMatcher keeps blobs that contain the query as a substring.
type ExactMatcher struct{}

// Match implements Matcher.
func (ExactMatcher) Match(blob, query string) bool {
	return strings.Contains(blob, query)
}

// FuzzyMatcher extends substring matching with per-token Levenshtein
// similarity, tolerating small misspellings in hand-typed queries.
type FuzzyMatcher struct {
	Threshold float64
	metric    *metrics.Levenshtein
}

// NewFuzzyMatcher returns a FuzzyMatcher. A threshold outside (0, 1] falls
// back to DefaultFuzzyThreshold.
func NewFuzzyMatcher(threshold float64) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	return &FuzzyMatcher{Threshold: threshold, metric: metrics.NewLevenshtein()}
}

// Match implements Matcher. A blob matches when it contains the query, when
// one of its tokens is similar to the whole query, or when every word of a
// multi-word query is contained in or similar to some blob token.
func (m *FuzzyMatcher) Match(blob, query string) bool {
	if strings.Contains(blob, query) {
		return true
	}

	tokens := strings.Fields(blob)
	if m.similarToAny(query, tokens) {
		return true
	}

	words := strings.Fields(query)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(blob, w) && !m.similarToAny(w, tokens) {
			return false
		}
	}
	return true
}

func (m *FuzzyMatcher) similarToAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if m.Similarity(s, tok) >= m.Threshold {
			return true
		}
	}
	return false
}

// Similarity returns the normalized Levenshtein similarity of a and b in [0, 1].
func (m *FuzzyMatcher) Similarity(a, b string) float64 {
	return strutil.Similarity(a, b, m.metric)
}
