// Package extract resolves embed URLs into playable stream URLs. Each
// remote host family gets its own strategy; a registry dispatches on the
// server label and falls back to a generic passthrough so an unknown host
// never fails a resolution outright.
package extract

import (
	"github.com/fahamena420/animeworld/internal/media"
)

// Result is the outcome of one extraction. Degraded marks results where
// the strategy could not fully resolve a direct link and handed back the
// unresolved embed URL instead; degraded results are still successes.
type Result struct {
	Sources   []media.ExtractedSource
	Headers   map[string]string
	Thumbnail string
	Degraded  bool
}

// Extractor resolves an embed URL into playable sources.
type Extractor interface {
	// Name identifies the strategy in logs and results.
	Name() string

	// Extract resolves embedURL. Strategies that prefer degrading over
	// failing return a Result with Degraded set instead of an error.
	Extract(embedURL string) (*Result, error)
}

// degradedResult builds the uniform fallback payload: the original embed
// URL as the sole source, quality marked unknown.
func degradedResult(embedURL string) *Result {
	return &Result{
		Sources: []media.ExtractedSource{
			{URL: embedURL, Quality: "unknown"},
		},
		Degraded: true,
	}
}
