package extract

import "github.com/fahamena420/animeworld/internal/media"

// Passthrough is the terminal strategy: it returns the embed URL unchanged
// as a single auto-quality source. Used for hosts that need no further
// resolution and for any server type the registry does not recognize.
type Passthrough struct{}

// NewPassthrough creates a Passthrough.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

func (p *Passthrough) Name() string { return "generic" }

func (p *Passthrough) Extract(embedURL string) (*Result, error) {
	return &Result{
		Sources: []media.ExtractedSource{
			{URL: embedURL, Quality: "auto"},
		},
	}, nil
}
