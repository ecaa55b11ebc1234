package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTMDBShow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/95479" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id":95479,"name":"Jujutsu Kaisen"}`)
	}))
	defer ts.Close()

	tmdb := NewTMDB(TMDBOptions{BaseURL: ts.URL, APIKey: "test-key", Client: ts.Client()})
	show, err := tmdb.Show(95479)
	if err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	if show.Name != "Jujutsu Kaisen" {
		t.Errorf("Name = %q", show.Name)
	}
}

func TestTMDBMovie(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/810693" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"id":810693,"title":"Jujutsu Kaisen 0"}`)
	}))
	defer ts.Close()

	tmdb := NewTMDB(TMDBOptions{BaseURL: ts.URL, APIKey: "test-key", Client: ts.Client()})
	movie, err := tmdb.Movie(810693)
	if err != nil {
		t.Fatalf("Movie returned error: %v", err)
	}
	if movie.Title != "Jujutsu Kaisen 0" {
		t.Errorf("Title = %q", movie.Title)
	}
}

func TestTMDBSearchMovie(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("query"); got != "jujutsu kaisen 0" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprint(w, `{"results":[{"id":810693,"title":"Jujutsu Kaisen 0"},{"id":1,"title":"Other"}]}`)
	}))
	defer ts.Close()

	tmdb := NewTMDB(TMDBOptions{BaseURL: ts.URL, APIKey: "test-key", Client: ts.Client()})
	results, err := tmdb.SearchMovie("jujutsu kaisen 0")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(results) != 2 || results[0].Title != "Jujutsu Kaisen 0" {
		t.Errorf("results = %+v", results)
	}
}

func TestTMDBRequiresAPIKey(t *testing.T) {
	tmdb := NewTMDB(TMDBOptions{BaseURL: "https://tmdb.test"})
	if _, err := tmdb.Show(1); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestAniListMedia(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var request struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("decoding GraphQL request: %v", err)
		}
		if id, _ := request.Variables["id"].(float64); int(id) != 116674 {
			t.Errorf("variables.id = %v, want 116674", request.Variables["id"])
		}
		fmt.Fprint(w, `{"data":{"Media":{"id":116674,"format":"MOVIE","title":{"romaji":"Gekijouban Jujutsu Kaisen 0","english":"JUJUTSU KAISEN 0"}}}}`)
	}))
	defer ts.Close()

	anilist := NewAniList(AniListOptions{BaseURL: ts.URL, Client: ts.Client()})
	media, err := anilist.Media(116674)
	if err != nil {
		t.Fatalf("Media returned error: %v", err)
	}
	if !media.IsMovie() {
		t.Error("IsMovie = false for MOVIE format")
	}
	if media.PreferredTitle() != "JUJUTSU KAISEN 0" {
		t.Errorf("PreferredTitle = %q, want the English title", media.PreferredTitle())
	}
}

func TestAniListPreferredTitleFallsBackToRomaji(t *testing.T) {
	var media AniListMedia
	media.Title.Romaji = "Sousou no Frieren"
	if got := media.PreferredTitle(); got != "Sousou no Frieren" {
		t.Errorf("PreferredTitle = %q", got)
	}
}

func TestAniListMediaMissing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"Media":null}}`)
	}))
	defer ts.Close()

	anilist := NewAniList(AniListOptions{BaseURL: ts.URL, Client: ts.Client()})
	if _, err := anilist.Media(999999999); err == nil {
		t.Error("expected error for missing media")
	}
}

func TestAniZipMapping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mappings" || r.URL.Query().Get("anilist_id") != "113415" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"mappings":{"themoviedb_id":95479},"episodes":{"1":{"seasonNumber":2},"2":{"seasonNumber":2}}}`)
	}))
	defer ts.Close()

	anizip := NewAniZip(AniZipOptions{BaseURL: ts.URL, Client: ts.Client()})
	mapping, err := anizip.Mapping(113415)
	if err != nil {
		t.Fatalf("Mapping returned error: %v", err)
	}
	if mapping.TMDBID != 95479 {
		t.Errorf("TMDBID = %d", mapping.TMDBID)
	}
	if mapping.SeasonNumber != 2 {
		t.Errorf("SeasonNumber = %d, want the first episode's season", mapping.SeasonNumber)
	}
}

func TestAniZipMappingDefaultsSeason(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"mappings":{"themoviedb_id":42},"episodes":{}}`)
	}))
	defer ts.Close()

	anizip := NewAniZip(AniZipOptions{BaseURL: ts.URL, Client: ts.Client()})
	mapping, err := anizip.Mapping(1)
	if err != nil {
		t.Fatalf("Mapping returned error: %v", err)
	}
	if mapping.SeasonNumber != 1 {
		t.Errorf("SeasonNumber = %d, want default 1", mapping.SeasonNumber)
	}
}

func TestAniZipNoMapping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"mappings":{},"episodes":{}}`)
	}))
	defer ts.Close()

	anizip := NewAniZip(AniZipOptions{BaseURL: ts.URL, Client: ts.Client()})
	if _, err := anizip.Mapping(1); !errors.Is(err, ErrNoMapping) {
		t.Errorf("expected ErrNoMapping, got %v", err)
	}
}
