package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fahamena420/animeworld/internal/httputil"
)

const defaultAniListBase = "https://graphql.anilist.co"

const mediaQuery = `query ($id: Int) {
  Media(id: $id, type: ANIME) {
    id
    format
    title {
      romaji
      english
    }
  }
}`

// AniList is a client for the AniList GraphQL API.
type AniList struct {
	base   string
	client *http.Client
}

// AniListOptions configures an AniList client; zero values select the
// public endpoint and a hardened client.
type AniListOptions struct {
	BaseURL string
	Client  *http.Client
}

// NewAniList creates an AniList client.
func NewAniList(opts AniListOptions) *AniList {
	base := opts.BaseURL
	if base == "" {
		base = defaultAniListBase
	}
	client := opts.Client
	if client == nil {
		client = httputil.NewClient()
	}
	return &AniList{base: strings.TrimRight(base, "/"), client: client}
}

// AniListMedia is a single anime entry.
type AniListMedia struct {
	ID     int    `json:"id"`
	Format string `json:"format"` // TV, MOVIE, OVA, ...
	Title  struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
	} `json:"title"`
}

// PreferredTitle returns the English title when AniList has one, the
// romaji title otherwise. English titles match TMDB's catalog better.
func (m *AniListMedia) PreferredTitle() string {
	if m.Title.English != "" {
		return m.Title.English
	}
	return m.Title.Romaji
}

// IsMovie reports whether the entry's media format is MOVIE.
func (m *AniListMedia) IsMovie() bool {
	return strings.EqualFold(m.Format, "MOVIE")
}

// Media fetches an anime entry by AniList id.
func (a *AniList) Media(id int) (*AniListMedia, error) {
	request := map[string]any{
		"query":     mediaQuery,
		"variables": map[string]any{"id": id},
	}

	body, err := httputil.PostJSON(a.client, a.base, request)
	if err != nil {
		return nil, fmt.Errorf("AniList media %d: %w", id, err)
	}

	var payload struct {
		Data struct {
			Media *AniListMedia `json:"Media"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("AniList media %d: decoding response: %w", id, err)
	}
	if payload.Data.Media == nil || payload.Data.Media.PreferredTitle() == "" {
		return nil, fmt.Errorf("AniList media %d has no title", id)
	}
	return payload.Data.Media, nil
}
