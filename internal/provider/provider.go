// Package provider implements content providers: catalog search, series
// metadata scraping, player-page extraction and the source resolution
// pipeline.
package provider

import (
	"errors"

	"github.com/fahamena420/animeworld/internal/media"
)

// Typed failure kinds. Callers distinguish these with errors.Is; anything
// else is a transport-level failure.
var (
	// ErrContentNotFound: neither the episode nor the movie URL shape
	// resolves for an id.
	ErrContentNotFound = errors.New("content not found at episode or movie URL")

	// ErrServerNotFound: the requested server label/index is absent from
	// the page's server list.
	ErrServerNotFound = errors.New("server not found for this content")

	// ErrUpstreamFormatChanged: the page fetched fine but the expected
	// markup is missing, i.e. the provider changed its layout.
	ErrUpstreamFormatChanged = errors.New("upstream page markup changed")
)

// Provider is the interface content providers implement.
type Provider interface {
	// Search returns catalog results for a free-text query. An empty
	// result list is not an error.
	Search(query string) ([]media.SearchResult, error)

	// Series returns full metadata for a series or movie id.
	Series(id string) (*media.Series, error)

	// Season returns one season of a series, with episodes.
	Season(id string, seasonNumber int) (*media.Season, error)

	// Player returns the active video frame and all server options for a
	// native id.
	Player(id string) (*media.PlayerPage, error)

	// ContentType reports whether a native id is an episode or a movie.
	ContentType(id string) (media.ContentKind, error)

	// ResolveSource runs the full pipeline for an id and a server
	// label/index, producing playable sources.
	ResolveSource(id, serverName string) (*media.SourceResolutionResult, error)
}
