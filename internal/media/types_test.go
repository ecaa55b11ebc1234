package media

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		id      string
		kind    ContentKind
		series  string
		season  int
		episode int
	}{
		{"demo-show-1x1", KindEpisode, "demo-show", 1, 1},
		{"demo-show-12x345", KindEpisode, "demo-show", 12, 345},
		{"jujutsu-kaisen-0", KindMovie, "jujutsu-kaisen-0", 0, 0},
		{"one-piece", KindMovie, "one-piece", 0, 0},
		{"show-1xa", KindMovie, "show-1xa", 0, 0},
	}

	for _, tt := range tests {
		got := ParseIdentifier(tt.id)
		if got.Kind != tt.kind || got.ProviderID != tt.series || got.Season != tt.season || got.Episode != tt.episode {
			t.Errorf("ParseIdentifier(%q) = %+v", tt.id, got)
		}
	}
}

func TestIdentifierKeyRoundTrip(t *testing.T) {
	for _, id := range []string{"demo-show-1x1", "jujutsu-kaisen-0", "one-piece-2x12"} {
		if got := ParseIdentifier(id).Key(); got != id {
			t.Errorf("Key() = %q, want %q", got, id)
		}
	}
}

func TestEpisodeID(t *testing.T) {
	if got := EpisodeID("demo-show", 2, 7); got != "demo-show-2x7" {
		t.Errorf("EpisodeID = %q", got)
	}
}
