package extract

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// manifestRe pulls the stream URL out of the unpacked player config.
var manifestRe = regexp.MustCompile(`sources:\[\{file:"(.*?)"`)

// Filemoon extracts streams from filemoon-style hosts. The embed page
// nests the real player in an iframe whose config is hidden in a packed
// script; the config's source manifest carries the m3u8 URL.
//
// Extraction failure at any step is non-fatal: the caller gets the
// original embed URL back as a degraded result, trading playability for
// pipeline stability.
type Filemoon struct {
	client *http.Client
}

// NewFilemoon creates a Filemoon extractor.
func NewFilemoon(client *http.Client) *Filemoon {
	return &Filemoon{client: client}
}

func (f *Filemoon) Name() string { return "filemoon" }

func (f *Filemoon) Extract(embedURL string) (*Result, error) {
	streamURL, err := f.resolve(embedURL)
	if err != nil {
		logrus.Warnf("filemoon extraction failed for %s: %v", embedURL, err)
		return degradedResult(embedURL), nil
	}

	return &Result{
		Sources: []media.ExtractedSource{
			{URL: streamURL, Quality: "auto", IsHLS: strings.Contains(streamURL, ".m3u8")},
		},
	}, nil
}

func (f *Filemoon) resolve(embedURL string) (string, error) {
	origin := urlOrigin(embedURL)

	page, err := httputil.GetHTML(f.client, embedURL, origin)
	if err != nil {
		return "", err
	}

	// The player page may either embed the packed config directly or sit
	// one iframe deeper.
	if !IsPacked(page) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		if err != nil {
			return "", err
		}
		iframeSrc, _ := doc.Find("iframe").First().Attr("src")
		if iframeSrc == "" {
			return "", errNoIframe
		}
		page, err = httputil.GetHTML(f.client, absoluteURL(embedURL, iframeSrc), origin)
		if err != nil {
			return "", err
		}
	}

	unpacked, err := Unpack(page)
	if err != nil {
		return "", err
	}

	m := manifestRe.FindStringSubmatch(unpacked)
	if m == nil {
		return "", errNoManifest
	}
	return m[1], nil
}

var (
	errNoIframe   = errors.New("no iframe found on the embed page")
	errNoManifest = errors.New("no source manifest in unpacked player config")
)

// urlOrigin returns scheme://host for a URL, or empty when unparseable.
func urlOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
