package extract

import (
	"strings"
	"testing"
)

// packedFixture encodes: jwplayer("player").setup({sources:[{file:"https://cdn.example/hls/master.m3u8"}]});
// with the standard packer (base 36).
const packedFixture = `<script>eval(function(p,a,c,k,e,d){e=function(c){return c.toString(36)};if(!''.replace(/^/,String)){while(c--){d[e(c)]=k[c]||e(c)}k=[function(e){return d[e]}];e=function(){return'\\w+'};c=1};while(c--){if(k[c]){p=p.replace(new RegExp('\\b'+e(c)+'\\b','g'),k[c])}}return p}('4("5").3({0:[{1:"2"}]});',6,6,'sources|file|https://cdn.example/hls/master.m3u8|setup|jwplayer|player'.split('|'),0,{}))</script>`

func TestUnpackFixture(t *testing.T) {
	got, err := Unpack(packedFixture)
	if err != nil {
		t.Fatalf("Unpack returned error: %v", err)
	}

	want := `jwplayer("player").setup({sources:[{file:"https://cdn.example/hls/master.m3u8"}]});`
	if got != want {
		t.Errorf("Unpack = %q, want %q", got, want)
	}
}

func TestUnpackManifestRegex(t *testing.T) {
	unpacked, err := Unpack(packedFixture)
	if err != nil {
		t.Fatalf("Unpack returned error: %v", err)
	}

	m := manifestRe.FindStringSubmatch(unpacked)
	if m == nil {
		t.Fatal("manifest regex did not match unpacked config")
	}
	if m[1] != "https://cdn.example/hls/master.m3u8" {
		t.Errorf("manifest URL = %q", m[1])
	}
}

func TestUnpackNoPayload(t *testing.T) {
	_, err := Unpack("<html><body>plain page</body></html>")
	if err == nil {
		t.Error("expected error for page without packed payload")
	}
}

func TestUnpackHighBase(t *testing.T) {
	// base 62 payload exercising the uppercase digit range: index 36
	// encodes as "A".
	words := make([]string, 37)
	words[36] = "hello"
	packed := `eval(function(p,a,c,k,e,d){}('A',62,37,'` + strings.Join(words, "|") + `'.split('|'),0,{}))`

	got, err := Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack returned error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Unpack = %q, want 'hello'", got)
	}
}

func TestIsPacked(t *testing.T) {
	if !IsPacked(packedFixture) {
		t.Error("IsPacked = false for packed fixture")
	}
	if IsPacked("<html>nothing here</html>") {
		t.Error("IsPacked = true for plain page")
	}
}

func TestEncodeIndex(t *testing.T) {
	tests := []struct {
		n, base int
		want    string
	}{
		{0, 36, "0"},
		{10, 36, "a"},
		{35, 36, "z"},
		{36, 36, "10"},
		{36, 62, "A"},
		{61, 62, "Z"},
		{62, 62, "10"},
	}
	for _, tt := range tests {
		if got := encodeIndex(tt.n, tt.base); got != tt.want {
			t.Errorf("encodeIndex(%d, %d) = %q, want %q", tt.n, tt.base, got, tt.want)
		}
	}
}
