package provider

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadTestDoc(t *testing.T, filename string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parsing test fixture %s: %v", filename, err)
	}
	return doc
}

func TestParseSearchResults(t *testing.T) {
	doc := loadTestDoc(t, "search_results.html")
	results := parseSearchResults(doc)

	// The fourth entry has no title and must be skipped.
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].ID != "naruto-shippuden" {
		t.Errorf("result[0].ID = %q, want 'naruto-shippuden'", results[0].ID)
	}
	if results[0].Title != "Naruto Shippuden" {
		t.Errorf("result[0].Title = %q, want 'Naruto Shippuden'", results[0].Title)
	}
	if results[0].Rating != "8.5" {
		t.Errorf("result[0].Rating = %q, want '8.5' (TMDB prefix stripped)", results[0].Rating)
	}
	if results[0].Poster != "https://img.animeworld.test/naruto-shippuden.jpg" {
		t.Errorf("result[0].Poster = %q", results[0].Poster)
	}

	if results[2].ID != "jujutsu-kaisen-0" {
		t.Errorf("result[2].ID = %q, want 'jujutsu-kaisen-0'", results[2].ID)
	}
}

func TestParsePlayerPageStructured(t *testing.T) {
	doc := loadTestDoc(t, "player_page.html")
	page, err := parsePlayerPage(doc)
	if err != nil {
		t.Fatalf("parsePlayerPage returned error: %v", err)
	}

	if page.Iframe != "https://deadtoons.example/embed/4242/1-1" {
		t.Errorf("Iframe = %q, want the active frame's URL", page.Iframe)
	}

	if len(page.Sources) != 3 {
		t.Fatalf("expected 3 server options, got %d", len(page.Sources))
	}

	want := []struct {
		index  int
		label  string
		active bool
		url    string
	}{
		{1, "My Server", true, "https://deadtoons.example/embed/4242/1-1"},
		{2, "FileMoon", false, "https://filemoon.example/e/abc123"},
		{3, "StreamWish", false, "https://streamwish.example/e/def456"},
	}
	for i, w := range want {
		got := page.Sources[i]
		if got.Index != w.index {
			t.Errorf("sources[%d].Index = %d, want %d", i, got.Index, w.index)
		}
		if got.Label != w.label {
			t.Errorf("sources[%d].Label = %q, want %q", i, got.Label, w.label)
		}
		if got.Active != w.active {
			t.Errorf("sources[%d].Active = %v, want %v", i, got.Active, w.active)
		}
		if got.EmbedURL != w.url {
			t.Errorf("sources[%d].EmbedURL = %q, want %q", i, got.EmbedURL, w.url)
		}
	}
}

func TestParsePlayerPagePositionalFallback(t *testing.T) {
	doc := loadTestDoc(t, "player_fallback.html")
	page, err := parsePlayerPage(doc)
	if err != nil {
		t.Fatalf("parsePlayerPage returned error: %v", err)
	}

	if len(page.Sources) != 2 {
		t.Fatalf("expected 2 server options, got %d", len(page.Sources))
	}
	if page.Sources[0].Label != "Server 1" || page.Sources[1].Label != "Server 2" {
		t.Errorf("fallback labels = %q, %q; want positional names", page.Sources[0].Label, page.Sources[1].Label)
	}
	if !page.Sources[0].Active || page.Sources[1].Active {
		t.Error("fallback active flags do not follow the 'on' class")
	}
	if page.Sources[1].EmbedURL != "https://filemoon.example/e/abc123" {
		t.Errorf("fallback must honor data-src, got %q", page.Sources[1].EmbedURL)
	}
}

// Both parse tiers must agree on a page satisfying both markup shapes, so
// a future markup drift that silently flips the tier keeps the result
// intact.
func TestParseTiersAgree(t *testing.T) {
	doc := loadTestDoc(t, "player_page.html")

	structured := parseServerTabs(doc)
	positional := parseVideoContainers(doc)

	if len(structured) != len(positional) {
		t.Fatalf("tier disagreement: structured %d options, positional %d", len(structured), len(positional))
	}
	for i := range structured {
		if structured[i].EmbedURL != positional[i].EmbedURL {
			t.Errorf("option %d embed URL: structured %q, positional %q",
				i, structured[i].EmbedURL, positional[i].EmbedURL)
		}
		if structured[i].Index != positional[i].Index {
			t.Errorf("option %d index: structured %d, positional %d",
				i, structured[i].Index, positional[i].Index)
		}
	}
}

func TestParsePlayerPageNoIframe(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><body>gone</body></html>"))
	_, err := parsePlayerPage(doc)
	if !isFormatErr(err) {
		t.Errorf("expected upstream-format error for iframe-less page, got %v", err)
	}
}

func TestParseSeriesInfo(t *testing.T) {
	doc := loadTestDoc(t, "series_page.html")
	info := parseSeriesInfo(doc, "demo-show")

	if info.Title != "Demo Show" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.Rating != "8.1" {
		t.Errorf("Rating = %q, want '8.1'", info.Rating)
	}
	if info.Poster != "https://img.animeworld.test/demo-show.jpg" {
		t.Errorf("Poster = %q", info.Poster)
	}
	if info.Description != "A show used for fixtures." {
		t.Errorf("Description = %q", info.Description)
	}
	if info.Metadata["genre"] != "Action" || info.Metadata["status"] != "Ongoing" {
		t.Errorf("Metadata = %v", info.Metadata)
	}
}

func TestParseSeasons(t *testing.T) {
	doc := loadTestDoc(t, "series_page.html")
	seasons := parseSeasons(doc)

	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
	if seasons[0].Number != 1 || seasons[0].ID != "9001" {
		t.Errorf("seasons[0] = %+v", seasons[0])
	}
	if seasons[1].Number != 2 || seasons[1].ID != "9002" {
		t.Errorf("seasons[1] = %+v", seasons[1])
	}
}

func TestParseEpisodes(t *testing.T) {
	doc := loadTestDoc(t, "season_watch.html")
	episodes := parseEpisodes(doc, 1)

	if len(episodes) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(episodes))
	}

	if episodes[0].ID != "demo-show-1x1" || episodes[0].EpisodeNumber != 1 {
		t.Errorf("episodes[0] = %+v", episodes[0])
	}
	if episodes[0].Title != "The Beginning" {
		t.Errorf("episodes[0].Title = %q", episodes[0].Title)
	}
	if episodes[1].Number != "1x2" {
		t.Errorf("episodes[1].Number = %q", episodes[1].Number)
	}

	// Entry without a SxE marker falls back to document order.
	if episodes[2].EpisodeNumber != 3 || episodes[2].Number != "1x3" {
		t.Errorf("episodes[2] = %+v", episodes[2])
	}
}

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"https://animeworld.test/series/naruto/", "naruto"},
		{"https://animeworld.test/episode/demo-show-1x1", "demo-show-1x1"},
		{"/movies/jujutsu-kaisen-0/", "jujutsu-kaisen-0"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lastPathSegment(tt.href); got != tt.want {
			t.Errorf("lastPathSegment(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestServerLabel(t *testing.T) {
	tests := []struct {
		text  string
		index int
		want  string
	}{
		{"SERVER 1\nMy Server", 1, "My Server"},
		{"SERVER 2 FileMoon", 2, "FileMoon"},
		{"SERVER 3", 3, "Server 3"},
		{"", 4, "Server 4"},
	}
	for _, tt := range tests {
		if got := serverLabel(tt.text, tt.index); got != tt.want {
			t.Errorf("serverLabel(%q, %d) = %q, want %q", tt.text, tt.index, got, tt.want)
		}
	}
}
