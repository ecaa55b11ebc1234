package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/cache"
	"github.com/fahamena420/animeworld/internal/extract"
	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// AnimeWorld implements Provider for AnimeWorld-style WordPress frontends
// (/?s= search, /series/{id}, /movies/{id}, /episode/{id}).
type AnimeWorld struct {
	base         string
	client       *http.Client
	registry     *extract.Registry
	overridesDir string

	shortTTL time.Duration
	longTTL  time.Duration

	searchCache *cache.Store[[]media.SearchResult]
	seriesCache *cache.Store[*media.Series]
	seasonCache *cache.Store[media.Season]
	playerCache *cache.Store[*media.PlayerPage]
	typeCache   *cache.Store[media.ContentKind]
	sourceCache *cache.Store[*media.SourceResolutionResult]
}

// Options configures an AnimeWorld provider. Zero values select sane
// defaults; only BaseURL is required.
type Options struct {
	BaseURL      string
	Client       *http.Client
	Registry     *extract.Registry
	OverridesDir string // directory of static {id}.json series overrides
	ShortTTL     time.Duration
	LongTTL      time.Duration
}

// NewAnimeWorld creates an AnimeWorld provider.
func NewAnimeWorld(opts Options) *AnimeWorld {
	client := opts.Client
	if client == nil {
		client = httputil.NewClient()
	}
	registry := opts.Registry
	if registry == nil {
		registry = extract.NewRegistry(client)
	}
	shortTTL := opts.ShortTTL
	if shortTTL <= 0 {
		shortTTL = cache.ShortTTL
	}
	longTTL := opts.LongTTL
	if longTTL <= 0 {
		longTTL = cache.LongTTL
	}

	return &AnimeWorld{
		base:         strings.TrimRight(opts.BaseURL, "/"),
		client:       client,
		registry:     registry,
		overridesDir: opts.OverridesDir,
		shortTTL:     shortTTL,
		longTTL:      longTTL,
		searchCache:  cache.New[[]media.SearchResult](),
		seriesCache:  cache.New[*media.Series](),
		seasonCache:  cache.New[media.Season](),
		playerCache:  cache.New[*media.PlayerPage](),
		typeCache:    cache.New[media.ContentKind](),
		sourceCache:  cache.New[*media.SourceResolutionResult](),
	}
}

func (a *AnimeWorld) episodeURL(id string) string { return a.base + "/episode/" + id }
func (a *AnimeWorld) movieURL(id string) string   { return a.base + "/movies/" + id }
func (a *AnimeWorld) seriesURL(id string) string  { return a.base + "/series/" + id }

// Search returns catalog results for a free-text query, cached one day.
func (a *AnimeWorld) Search(query string) ([]media.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	return a.searchCache.Memoize("search_"+query, a.shortTTL, func() ([]media.SearchResult, error) {
		url := a.base + "/?s=" + httputil.EncodeQuery(query)
		doc, err := a.fetchDocument(url)
		if err != nil {
			return nil, fmt.Errorf("searching for %q: %w", query, err)
		}
		results := parseSearchResults(doc)
		logrus.Debugf("search %q returned %d results", query, len(results))
		return results, nil
	})
}

// ContentType probes whether a native id names an episode or a movie.
// Episodes are the majority case, so the episode URL shape is checked
// first. The verdict is cached.
func (a *AnimeWorld) ContentType(id string) (media.ContentKind, error) {
	if err := httputil.ValidateID(id); err != nil {
		return 0, fmt.Errorf("invalid content ID: %w", err)
	}

	return a.typeCache.Memoize("content_type_"+id, a.shortTTL, func() (media.ContentKind, error) {
		if ok, _ := httputil.Head(a.client, a.episodeURL(id)); ok {
			return media.KindEpisode, nil
		}
		if ok, _ := httputil.Head(a.client, a.movieURL(id)); ok {
			return media.KindMovie, nil
		}
		return 0, fmt.Errorf("probing %q: %w", id, ErrContentNotFound)
	})
}

// Player fetches and parses the watch page for a native id, trying the
// episode URL shape first and the movie shape on failure. Cached 7 days.
func (a *AnimeWorld) Player(id string) (*media.PlayerPage, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid content ID: %w", err)
	}

	return a.playerCache.Memoize("player_"+id, a.longTTL, func() (*media.PlayerPage, error) {
		page, epErr := a.playerFromURL(a.episodeURL(id))
		if epErr == nil {
			return page, nil
		}
		logrus.Debugf("episode URL failed for %s (%v), trying movie URL", id, epErr)

		page, movErr := a.playerFromURL(a.movieURL(id))
		if movErr == nil {
			return page, nil
		}

		// A markup failure means the page exists but changed shape;
		// report that over the blunter not-found.
		for _, err := range []error{epErr, movErr} {
			if isFormatErr(err) {
				return nil, fmt.Errorf("player page for %q: %w", id, err)
			}
		}
		return nil, fmt.Errorf("player page for %q: %w", id, ErrContentNotFound)
	})
}

func (a *AnimeWorld) playerFromURL(url string) (*media.PlayerPage, error) {
	doc, err := a.fetchDocument(url)
	if err != nil {
		return nil, err
	}
	return parsePlayerPage(doc)
}

// ResolveSource runs the full pipeline for a native id and a server
// label or 1-based index: probe the content type, extract the player
// page, select the server, dispatch its embed URL through the extractor
// registry and assemble the final payload. Successful resolutions are
// cached 7 days; failures are never cached.
func (a *AnimeWorld) ResolveSource(id, serverName string) (*media.SourceResolutionResult, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid content ID: %w", err)
	}
	if serverName == "" {
		return nil, fmt.Errorf("server name is required")
	}

	key := fmt.Sprintf("source_%s_%s", id, serverName)
	return a.sourceCache.Memoize(key, a.longTTL, func() (*media.SourceResolutionResult, error) {
		if _, err := a.ContentType(id); err != nil {
			return nil, err
		}

		page, err := a.Player(id)
		if err != nil {
			return nil, err
		}
		if len(page.Sources) == 0 {
			return nil, fmt.Errorf("no servers for %q: %w", id, ErrUpstreamFormatChanged)
		}

		option, err := selectServer(page.Sources, serverName)
		if err != nil {
			return nil, err
		}

		result := &media.SourceResolutionResult{
			Success: true,
			Server:  option.Index,
			Name:    option.Label,
			URL:     option.EmbedURL,
		}

		extracted, err := a.registry.Extract(option.Label, option.EmbedURL)
		if err != nil || extracted == nil || len(extracted.Sources) == 0 {
			// A broken extractor must not block the user from at least
			// reaching the embed page.
			if err != nil {
				logrus.Warnf("extraction failed for %s server %q: %v", id, option.Label, err)
			}
			result.Sources = []media.ExtractedSource{{URL: option.EmbedURL, Quality: "auto"}}
			result.Degraded = true
			return result, nil
		}

		result.Sources = extracted.Sources
		result.Headers = extracted.Headers
		result.Thumbnail = extracted.Thumbnail
		result.Degraded = extracted.Degraded
		return result, nil
	})
}

// selectServer picks a server option by case-insensitive label match,
// falling back to positional index when name parses as an integer.
func selectServer(options []media.ServerOption, serverName string) (media.ServerOption, error) {
	want := strings.ToLower(strings.TrimSpace(serverName))

	for _, o := range options {
		if strings.ToLower(o.Label) == want {
			return o, nil
		}
	}

	if n, err := strconv.Atoi(want); err == nil {
		for _, o := range options {
			if o.Index == n {
				return o, nil
			}
		}
	}

	return media.ServerOption{}, fmt.Errorf("server %q: %w", serverName, ErrServerNotFound)
}

// fetchDocument fetches a URL and parses it into a goquery Document.
func (a *AnimeWorld) fetchDocument(url string) (*goquery.Document, error) {
	resp, err := httputil.Get(a.client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

func isFormatErr(err error) bool {
	return errors.Is(err, ErrUpstreamFormatChanged)
}
