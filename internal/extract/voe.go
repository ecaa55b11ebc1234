package extract

import (
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

var (
	// voe embed pages often bounce to a mirror domain via an inline
	// script before serving the player.
	voeRedirectRe = regexp.MustCompile(`window\.location\.href\s*=\s*'(https?://[^']+)'`)

	// the hls manifest URL is stored base64 encoded in the player config.
	voeHLSRe = regexp.MustCompile(`'hls'\s*:\s*'([^']+)'`)
)

// Voe extracts streams from voe-style hosts: follow the inline redirect if
// present, then base64-decode the hls field of the player config.
// Failures degrade instead of erroring.
type Voe struct {
	client *http.Client
}

// NewVoe creates a Voe extractor.
func NewVoe(client *http.Client) *Voe {
	return &Voe{client: client}
}

func (v *Voe) Name() string { return "voe" }

func (v *Voe) Extract(embedURL string) (*Result, error) {
	streamURL, err := v.resolve(embedURL)
	if err != nil {
		logrus.Warnf("voe extraction failed for %s: %v", embedURL, err)
		return degradedResult(embedURL), nil
	}

	return &Result{
		Sources: []media.ExtractedSource{
			{URL: streamURL, Quality: "auto", IsHLS: strings.Contains(streamURL, ".m3u8")},
		},
	}, nil
}

func (v *Voe) resolve(embedURL string) (string, error) {
	page, err := httputil.GetHTML(v.client, embedURL, urlOrigin(embedURL))
	if err != nil {
		return "", err
	}

	if m := voeRedirectRe.FindStringSubmatch(page); m != nil {
		page, err = httputil.GetHTML(v.client, m[1], embedURL)
		if err != nil {
			return "", err
		}
	}

	m := voeHLSRe.FindStringSubmatch(page)
	if m == nil {
		return "", errNoManifest
	}

	decoded, err := base64.StdEncoding.DecodeString(m[1])
	if err != nil {
		// Some mirrors store the manifest URL in the clear.
		if strings.HasPrefix(m[1], "http") {
			return m[1], nil
		}
		return "", err
	}
	return string(decoded), nil
}
