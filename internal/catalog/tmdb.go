package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fahamena420/animeworld/internal/httputil"
)

const defaultTMDBBase = "https://api.themoviedb.org/3"

// TMDB is a minimal client for The Movie Database REST API, covering the
// lookups the resolution flows need: show name, movie title, movie search.
type TMDB struct {
	base   string
	key    string
	client *http.Client
}

// TMDBOptions configures a TMDB client. APIKey is required at call time;
// BaseURL and Client default to the public API and a hardened client.
type TMDBOptions struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewTMDB creates a TMDB client.
func NewTMDB(opts TMDBOptions) *TMDB {
	base := opts.BaseURL
	if base == "" {
		base = defaultTMDBBase
	}
	client := opts.Client
	if client == nil {
		client = httputil.NewClient()
	}
	return &TMDB{
		base:   strings.TrimRight(base, "/"),
		key:    opts.APIKey,
		client: client,
	}
}

// Show is a TV show record, reduced to the fields the flows use.
type Show struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a movie record, reduced to the fields the flows use.
type Movie struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Show fetches a TV show by TMDB id.
func (t *TMDB) Show(id int) (*Show, error) {
	var show Show
	url := fmt.Sprintf("%s/tv/%d?api_key=%s", t.base, id, t.key)
	if err := t.get(url, &show); err != nil {
		return nil, fmt.Errorf("TMDB show %d: %w", id, err)
	}
	if show.Name == "" {
		return nil, fmt.Errorf("TMDB show %d has no name", id)
	}
	return &show, nil
}

// Movie fetches a movie by TMDB id.
func (t *TMDB) Movie(id int) (*Movie, error) {
	var movie Movie
	url := fmt.Sprintf("%s/movie/%d?api_key=%s", t.base, id, t.key)
	if err := t.get(url, &movie); err != nil {
		return nil, fmt.Errorf("TMDB movie %d: %w", id, err)
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("TMDB movie %d has no title", id)
	}
	return &movie, nil
}

// SearchMovie searches movies by title, in TMDB's relevance order.
func (t *TMDB) SearchMovie(query string) ([]Movie, error) {
	var payload struct {
		Results []Movie `json:"results"`
	}
	url := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s", t.base, t.key, httputil.EncodeQuery(query))
	if err := t.get(url, &payload); err != nil {
		return nil, fmt.Errorf("TMDB movie search %q: %w", query, err)
	}
	return payload.Results, nil
}

func (t *TMDB) get(url string, v any) error {
	if t.key == "" {
		return ErrMissingAPIKey
	}

	body, err := httputil.GetJSON(t.client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
