package extract

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// registration binds a strategy to the server-label substrings it claims.
type registration struct {
	patterns  []string
	extractor Extractor
}

// Registry dispatches server labels to extraction strategies. Dispatch is
// case-insensitive substring matching over an ordered table; the first
// match wins and unmatched labels fall through to the passthrough.
type Registry struct {
	table    []registration
	fallback Extractor
}

// NewRegistry builds the default strategy table over the given client.
func NewRegistry(client *http.Client) *Registry {
	r := &Registry{fallback: NewPassthrough()}

	r.Register(NewChainedAPI(client), "deadtoons", "my server", "zephyr")
	r.Register(NewFilemoon(client), "filemoon", "moon")
	r.Register(NewStreamWish(client), "streamwish", "cybervynx", "earnvids", "smoothpre", "wish")
	r.Register(NewVoe(client), "voe")
	// Abyss-style hosts serve players that resist extraction; hand the
	// embed URL through untouched.
	r.Register(NewPassthrough(), "abyss", "short.icu")

	return r
}

// Register appends a strategy claiming the given label substrings.
func (r *Registry) Register(e Extractor, patterns ...string) {
	r.table = append(r.table, registration{patterns: patterns, extractor: e})
}

// Match returns the strategy claiming serverLabel, or the passthrough.
func (r *Registry) Match(serverLabel string) Extractor {
	label := strings.ToLower(serverLabel)
	for _, reg := range r.table {
		for _, p := range reg.patterns {
			if strings.Contains(label, p) {
				return reg.extractor
			}
		}
	}
	return r.fallback
}

// Extract dispatches embedURL to the strategy claiming serverLabel.
func (r *Registry) Extract(serverLabel, embedURL string) (*Result, error) {
	e := r.Match(serverLabel)
	logrus.Debugf("using %s extractor for server %q", e.Name(), serverLabel)
	return e.Extract(embedURL)
}
