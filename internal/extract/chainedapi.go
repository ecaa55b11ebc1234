package extract

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// defaultChainedHost is the remote player behind the deadtoons/"my server"
// embeds.
const defaultChainedHost = "play.zephyrflick.top"

// ChainedAPI extracts streams from hosts that wrap their player in a
// nested iframe and serve the actual stream from a companion API: the
// embed page links an iframe whose URL carries an opaque video token, and
// a form POST to the player API (authenticated by Referer) returns the
// stream JSON.
type ChainedAPI struct {
	client *http.Client

	// host is the iframe host the strategy expects; an iframe pointing
	// anywhere else is treated as a format change.
	host string
}

// NewChainedAPI creates a ChainedAPI for the default remote player host.
func NewChainedAPI(client *http.Client) *ChainedAPI {
	return &ChainedAPI{client: client, host: defaultChainedHost}
}

// NewChainedAPIForHost creates a ChainedAPI expecting iframes on host.
func NewChainedAPIForHost(client *http.Client, host string) *ChainedAPI {
	return &ChainedAPI{client: client, host: host}
}

func (c *ChainedAPI) Name() string { return "chained-api" }

// videoResponse is the player API's JSON payload.
type videoResponse struct {
	VideoSource string `json:"videoSource"`
	SecuredLink string `json:"securedLink"`
	VideoImage  string `json:"videoImage"`
}

func (c *ChainedAPI) Extract(embedURL string) (*Result, error) {
	page, err := httputil.GetHTML(c.client, embedURL, "")
	if err != nil {
		return nil, fmt.Errorf("fetching embed page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing embed page: %w", err)
	}

	iframeSrc, _ := doc.Find("iframe").First().Attr("src")
	if iframeSrc == "" {
		return nil, fmt.Errorf("no player iframe on embed page")
	}
	iframeSrc = absoluteURL(embedURL, iframeSrc)

	token, origin, err := c.parseIframe(iframeSrc)
	if err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/player/index.php?data=%s&do=getVideo", origin, url.QueryEscape(token))
	body, err := httputil.PostForm(c.client, apiURL, map[string]string{
		"Referer": iframeSrc,
		"Origin":  origin,
	})
	if err != nil {
		return nil, fmt.Errorf("querying player API: %w", err)
	}

	var resp videoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing player API response: %w", err)
	}
	if resp.VideoSource == "" {
		return nil, fmt.Errorf("player API response has no video source")
	}

	var sources []media.ExtractedSource
	if resp.SecuredLink != "" {
		sources = append(sources, media.ExtractedSource{URL: resp.SecuredLink, Quality: "secured", IsHLS: true})
	}
	sources = append(sources, media.ExtractedSource{URL: resp.VideoSource, Quality: "default", IsHLS: true})

	return &Result{
		Sources:   sources,
		Headers:   map[string]string{"Referer": origin + "/"},
		Thumbnail: resp.VideoImage,
	}, nil
}

// parseIframe validates the iframe host and derives the video token from
// the fixed /video/{token} path segment, plus the API origin.
func (c *ChainedAPI) parseIframe(iframeSrc string) (token, origin string, err error) {
	u, err := url.Parse(iframeSrc)
	if err != nil {
		return "", "", fmt.Errorf("parsing iframe URL: %w", err)
	}
	if !strings.Contains(u.Host, c.host) {
		return "", "", fmt.Errorf("iframe host %q does not match expected %q", u.Host, c.host)
	}

	const marker = "/video/"
	i := strings.Index(u.Path, marker)
	if i < 0 {
		return "", "", fmt.Errorf("iframe URL has no video token segment")
	}
	token = u.Path[i+len(marker):]
	if token == "" {
		return "", "", fmt.Errorf("iframe URL has an empty video token")
	}

	return token, u.Scheme + "://" + u.Host, nil
}

// absoluteURL resolves ref against base when ref is relative.
func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
