// Package match picks the provider-native id whose indexed title best
// matches a free-text query. Provider catalogs use inconsistent and
// sometimes abbreviated titles, so a pure similarity ranking is backed by
// id-slug rescue heuristics for the cases where the title text diverges
// but the catalog id encodes the canonical name.
package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// DefaultThreshold is the minimum similarity score accepted without
// falling back to the rescue heuristics. Empirically tuned; override via
// config when a provider's catalog warrants it.
const DefaultThreshold = 0.6

// ErrNoCandidates is returned when there is nothing to match against.
var ErrNoCandidates = fmt.Errorf("no search candidates to match against")

// Similarity computes a normalized, case-insensitive edit-distance score
// in [0,1]. Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	// The edit distance counts runes, so the normalizing length must too
	// or multi-byte titles score inflated.
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.Distance(a, b))/float64(maxLen)
}

// Resolver maps queries to candidate ids using Similarity with a minimum
// confidence gate.
type Resolver struct {
	Threshold float64
}

// NewResolver creates a Resolver. A non-positive threshold selects
// DefaultThreshold.
func NewResolver(threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{Threshold: threshold}
}

// Resolve returns the candidate id whose title best matches query.
//
// When the best similarity score falls below the threshold, two rescues
// run in order: a candidate whose id equals the slugified query, then a
// candidate whose id contains the slugified query. If neither applies the
// best-scoring candidate is returned anyway; a non-empty candidate list
// always yields an id.
func (r *Resolver) Resolve(query string, candidates []media.SearchResult) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	best := lo.MaxBy(candidates, func(a, b media.SearchResult) bool {
		return Similarity(query, a.Title) > Similarity(query, b.Title)
	})
	bestScore := Similarity(query, best.Title)

	if bestScore >= r.Threshold {
		logrus.Debugf("matched %q to %q (score %.2f)", query, best.ID, bestScore)
		return best.ID, nil
	}

	slug := httputil.Slugify(query)
	if slug != "" {
		if exact, ok := lo.Find(candidates, func(c media.SearchResult) bool {
			return c.ID == slug
		}); ok {
			logrus.Debugf("low score %.2f for %q, rescued by exact id slug %q", bestScore, query, exact.ID)
			return exact.ID, nil
		}

		if partial, ok := lo.Find(candidates, func(c media.SearchResult) bool {
			return strings.Contains(c.ID, slug)
		}); ok {
			logrus.Debugf("low score %.2f for %q, rescued by id substring %q", bestScore, query, partial.ID)
			return partial.ID, nil
		}
	}

	logrus.Warnf("no confident match for %q, falling back to %q (score %.2f)", query, best.ID, bestScore)
	return best.ID, nil
}
