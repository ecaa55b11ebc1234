// Package media defines shared types for the animeworld application.
package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ContentKind represents whether a native id refers to an episode or a movie.
type ContentKind int

const (
	KindEpisode ContentKind = iota
	KindMovie
)

func (k ContentKind) String() string {
	switch k {
	case KindEpisode:
		return "episode"
	case KindMovie:
		return "movie"
	default:
		return "unknown"
	}
}

// ContentIdentifier is a parsed native id. Season/Episode are zero iff
// Kind == KindMovie.
type ContentIdentifier struct {
	ProviderID string
	Kind       ContentKind
	Season     int
	Episode    int
}

// Key returns the opaque string form used in provider URLs and cache keys:
// the provider id alone for movies, "{id}-{season}x{episode}" for episodes.
func (c ContentIdentifier) Key() string {
	if c.Kind == KindMovie {
		return c.ProviderID
	}
	return fmt.Sprintf("%s-%dx%d", c.ProviderID, c.Season, c.Episode)
}

// EpisodeID builds the native episode id for a series id and a
// season/episode pair.
func EpisodeID(seriesID string, season, episode int) string {
	return fmt.Sprintf("%s-%dx%d", seriesID, season, episode)
}

// ParseIdentifier splits a native id into its series id and season/episode
// parts. Ids without a trailing "-{S}x{E}" suffix are treated as movies.
func ParseIdentifier(id string) ContentIdentifier {
	if i := strings.LastIndex(id, "-"); i > 0 {
		parts := strings.SplitN(id[i+1:], "x", 2)
		if len(parts) == 2 {
			season, serr := strconv.Atoi(parts[0])
			episode, eerr := strconv.Atoi(parts[1])
			if serr == nil && eerr == nil {
				return ContentIdentifier{
					ProviderID: id[:i],
					Kind:       KindEpisode,
					Season:     season,
					Episode:    episode,
				}
			}
		}
	}
	return ContentIdentifier{ProviderID: id, Kind: KindMovie}
}

// SearchResult represents a single catalog search result from a provider.
// Ordering is provider-defined, not relevance-sorted.
type SearchResult struct {
	ID     string `json:"id"` // provider-native id (last URL path segment)
	Title  string `json:"title"`
	Rating string `json:"rating,omitempty"`
	Poster string `json:"poster,omitempty"`
	URL    string `json:"url"`
}

// ServerOption is one hosting alternative on a player page. Index is the
// 1-based position in the page's server list. At most one option is Active;
// pages with no active marker fall back to index 1.
type ServerOption struct {
	Index    int    `json:"server"`
	Label    string `json:"name"`
	Active   bool   `json:"active"`
	EmbedURL string `json:"src"`
}

// PlayerPage is the normalized result of scraping a watch/embed page.
type PlayerPage struct {
	Iframe  string         `json:"iframe"`  // the currently active frame's URL
	Sources []ServerOption `json:"sources"` // all server options in page order
}

// ExtractedSource is a single resolved stream. Quality is a free-text
// label, not a sortable ordering.
type ExtractedSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	IsHLS   bool   `json:"isHLS"`
	IsDASH  bool   `json:"isDASH"`
}

// SourceResolutionResult is the final payload for a resolved id/server
// pair. Degraded marks results where extraction could not fully resolve a
// direct link and the raw embed URL was returned instead.
type SourceResolutionResult struct {
	Success   bool              `json:"success"`
	Server    int               `json:"server"`
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	Sources   []ExtractedSource `json:"sources"`
	Headers   map[string]string `json:"headers,omitempty"`
	Thumbnail string            `json:"thumbnail,omitempty"`
	Degraded  bool              `json:"degraded,omitempty"`
}

// Episode represents a single episode scraped from a season's watch page.
type Episode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Image         string `json:"image,omitempty"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Number        string `json:"number"` // "SxE" display form
	URL           string `json:"url"`
}

// Season groups the episodes of one season of a series.
type Season struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	Name     string    `json:"name"`
	Episodes []Episode `json:"episodes,omitempty"`
}

// Series is the full scraped metadata for a series or movie page.
// Movies are represented as a single synthetic "Movie" season holding one
// episode pointing at the movie player.
type Series struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Poster        string            `json:"poster,omitempty"`
	Rating        string            `json:"rating,omitempty"`
	Description   string            `json:"description,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	IsMovie       bool              `json:"isMovie,omitempty"`
	Seasons       []Season          `json:"seasons"`
	TotalSeasons  int               `json:"totalSeasons"`
	TotalEpisodes int               `json:"totalEpisodes"`
}
