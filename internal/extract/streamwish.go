package extract

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// fileRe matches a plain m3u8 manifest reference in page javascript. Some
// streamwish mirrors serve the player config unpacked.
var fileRe = regexp.MustCompile(`file\s*:\s*"(https?://[^"]+\.m3u8[^"]*)"`)

// StreamWish extracts streams from streamwish-family hosts (streamwish,
// cybervynx, earnvids, smoothpre and other mirrors). The player config
// sits directly on the embed page, either in the clear or inside a packed
// script. Failures degrade instead of erroring.
type StreamWish struct {
	client *http.Client
}

// NewStreamWish creates a StreamWish extractor.
func NewStreamWish(client *http.Client) *StreamWish {
	return &StreamWish{client: client}
}

func (s *StreamWish) Name() string { return "streamwish" }

func (s *StreamWish) Extract(embedURL string) (*Result, error) {
	streamURL, err := s.resolve(embedURL)
	if err != nil {
		logrus.Warnf("streamwish extraction failed for %s: %v", embedURL, err)
		return degradedResult(embedURL), nil
	}

	return &Result{
		Sources: []media.ExtractedSource{
			{URL: streamURL, Quality: "auto", IsHLS: strings.Contains(streamURL, ".m3u8")},
		},
	}, nil
}

func (s *StreamWish) resolve(embedURL string) (string, error) {
	page, err := httputil.GetHTML(s.client, embedURL, urlOrigin(embedURL))
	if err != nil {
		return "", err
	}

	if m := fileRe.FindStringSubmatch(page); m != nil {
		return m[1], nil
	}

	if IsPacked(page) {
		unpacked, err := Unpack(page)
		if err != nil {
			return "", err
		}
		if m := fileRe.FindStringSubmatch(unpacked); m != nil {
			return m[1], nil
		}
		if m := manifestRe.FindStringSubmatch(unpacked); m != nil {
			return m[1], nil
		}
	}

	return "", errNoManifest
}
