// Package catalog maps external identifiers (TMDB, AniList) to titles
// that can be searched on the streaming provider.
package catalog

import "errors"

var (
	// ErrMissingAPIKey is returned when a TMDB operation runs without a
	// configured API key.
	ErrMissingAPIKey = errors.New("TMDB API key is not configured")

	// ErrNoMapping is returned when an AniList id has no TMDB mapping.
	ErrNoMapping = errors.New("no TMDB mapping for AniList id")

	// ErrNotAMovie is returned when a movie flow is invoked with an
	// AniList id whose media format is not MOVIE.
	ErrNotAMovie = errors.New("AniList media is not a movie")
)
