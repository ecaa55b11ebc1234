package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fahamena420/animeworld/internal/httputil"
)

const defaultAniZipBase = "https://api.ani.zip"

// AniZip is a client for the ani.zip mapping API, which cross-references
// AniList ids with other catalogs.
type AniZip struct {
	base   string
	client *http.Client
}

// AniZipOptions configures an AniZip client; zero values select the
// public endpoint and a hardened client.
type AniZipOptions struct {
	BaseURL string
	Client  *http.Client
}

// NewAniZip creates an AniZip client.
func NewAniZip(opts AniZipOptions) *AniZip {
	base := opts.BaseURL
	if base == "" {
		base = defaultAniZipBase
	}
	client := opts.Client
	if client == nil {
		client = httputil.NewClient()
	}
	return &AniZip{base: strings.TrimRight(base, "/"), client: client}
}

// Mapping cross-references an AniList id to TMDB. SeasonNumber is the TV
// season the AniList entry covers; AniList models each season as its own
// entry, so the number comes from the entry's first mapped episode.
type Mapping struct {
	TMDBID       int
	SeasonNumber int
}

// Mapping fetches the TMDB mapping for an AniList id.
func (z *AniZip) Mapping(anilistID int) (*Mapping, error) {
	url := fmt.Sprintf("%s/mappings?anilist_id=%d", z.base, anilistID)
	body, err := httputil.GetJSON(z.client, url)
	if err != nil {
		return nil, fmt.Errorf("ani.zip mapping for %d: %w", anilistID, err)
	}

	var payload struct {
		Mappings struct {
			TheMovieDB int `json:"themoviedb_id"`
		} `json:"mappings"`
		Episodes map[string]struct {
			SeasonNumber int `json:"seasonNumber"`
		} `json:"episodes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("ani.zip mapping for %d: decoding response: %w", anilistID, err)
	}
	if payload.Mappings.TheMovieDB == 0 {
		return nil, fmt.Errorf("ani.zip mapping for %d: %w", anilistID, ErrNoMapping)
	}

	season := 1
	if first, ok := payload.Episodes["1"]; ok && first.SeasonNumber > 0 {
		season = first.SeasonNumber
	}

	return &Mapping{TMDBID: payload.Mappings.TheMovieDB, SeasonNumber: season}, nil
}
