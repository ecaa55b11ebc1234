package provider

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fahamena420/animeworld/internal/media"
)

// serverPrefixRe strips the positional "SERVER N" prefix from a server
// tab's text, leaving the host name ("SERVER 2 FileMoon" -> "FileMoon").
var serverPrefixRe = regexp.MustCompile(`(?i)SERVER\s+\d+`)

// parseSearchResults extracts catalog entries from a search results page.
func parseSearchResults(doc *goquery.Document) []media.SearchResult {
	var results []media.SearchResult

	doc.Find(".post-lst li").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(".entry-title").Text())
		rating := strings.TrimSpace(strings.ReplaceAll(s.Find(".vote").Text(), "TMDB", ""))
		poster, _ := s.Find("img").Attr("src")

		href, _ := s.Find("a").Attr("href")
		id := lastPathSegment(href)

		if id == "" || title == "" {
			return
		}
		results = append(results, media.SearchResult{
			ID:     id,
			Title:  title,
			Rating: rating,
			Poster: poster,
			URL:    href,
		})
	})

	return results
}

// parsePlayerPage extracts the active frame and the server list from a
// watch page. The structured server-selector markup is preferred; when it
// is absent the raw video containers are scanned instead, so a partial
// layout change degrades the result rather than losing it entirely.
func parsePlayerPage(doc *goquery.Document) (*media.PlayerPage, error) {
	if doc.Find(".video-player .video iframe").Length() == 0 {
		return nil, fmt.Errorf("no video iframe on page: %w", ErrUpstreamFormatChanged)
	}

	iframe := frameSource(doc.Find(".video-player .video.on iframe").First())
	if iframe == "" {
		iframe = frameSource(doc.Find(".video-player .video iframe").First())
	}
	if iframe == "" {
		return nil, fmt.Errorf("video frame has no source: %w", ErrUpstreamFormatChanged)
	}

	sources := parseServerTabs(doc)
	if len(sources) == 0 {
		sources = parseVideoContainers(doc)
	}

	return &media.PlayerPage{Iframe: iframe, Sources: sources}, nil
}

// parseServerTabs reads the sidebar server selector, pairing each tab with
// its #options-{i} frame.
func parseServerTabs(doc *goquery.Document) []media.ServerOption {
	var options []media.ServerOption

	doc.Find(".aa-tbs-video li").Each(func(i int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		active := strings.Contains(class, "on")

		src := frameSource(doc.Find(fmt.Sprintf("#options-%d iframe", i)))
		if src == "" {
			return
		}

		options = append(options, media.ServerOption{
			Index:    i + 1,
			Label:    serverLabel(s.Text(), i+1),
			Active:   active,
			EmbedURL: src,
		})
	})

	return options
}

// parseVideoContainers is the fallback tier: scan the raw video containers
// in document order and name servers positionally.
func parseVideoContainers(doc *goquery.Document) []media.ServerOption {
	var options []media.ServerOption

	doc.Find(".video-player .video").Each(func(i int, s *goquery.Selection) {
		src := frameSource(s.Find("iframe"))
		if src == "" {
			return
		}

		options = append(options, media.ServerOption{
			Index:    i + 1,
			Label:    fmt.Sprintf("Server %d", i+1),
			Active:   s.HasClass("on"),
			EmbedURL: src,
		})
	})

	return options
}

// frameSource returns an iframe's URL, preferring src but accepting the
// lazy-load data-src attribute.
func frameSource(s *goquery.Selection) string {
	if src, ok := s.Attr("src"); ok && src != "" {
		return src
	}
	if src, ok := s.Attr("data-src"); ok && src != "" {
		return src
	}
	return ""
}

// serverLabel normalizes a server tab's text to the host name part.
func serverLabel(text string, index int) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		if name := strings.TrimSpace(text[i+1:]); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(serverPrefixRe.ReplaceAllString(text, "")); name != "" {
		return name
	}
	return fmt.Sprintf("Server %d", index)
}

// parseSeriesInfo extracts the shared header fields of a series or movie
// page.
func parseSeriesInfo(doc *goquery.Document, id string) *media.Series {
	info := &media.Series{
		ID:          id,
		Title:       strings.TrimSpace(doc.Find(".entry-title").First().Text()),
		Rating:      strings.TrimSpace(strings.ReplaceAll(doc.Find(".vote").First().Text(), "TMDB", "")),
		Description: strings.TrimSpace(doc.Find(".entry-content").First().Text()),
		Metadata:    map[string]string{},
	}
	info.Poster, _ = doc.Find(".post-thumbnail img").First().Attr("src")

	doc.Find(".aa-cn .aa-tb.hdd.on .entry-metadata li").Each(func(_ int, s *goquery.Selection) {
		label := s.Find("b").Text()
		key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(label), ":"))
		value := strings.TrimSpace(strings.Replace(s.Text(), label, "", 1))
		if key != "" && value != "" {
			info.Metadata[key] = value
		}
	})

	return info
}

// parseSeasons extracts the season selector of a series page.
func parseSeasons(doc *goquery.Document) []media.Season {
	var seasons []media.Season

	doc.Find(".choose-season .aa-cnt li.sel-temp a").Each(func(_ int, s *goquery.Selection) {
		number, _ := s.Attr("data-season")
		id, _ := s.Attr("data-post")
		if number == "" || id == "" {
			return
		}
		n, err := strconv.Atoi(number)
		if err != nil {
			return
		}
		seasons = append(seasons, media.Season{
			ID:     id,
			Number: n,
			Name:   strings.TrimSpace(s.Text()),
		})
	})

	return seasons
}

// parseEpisodes extracts the episode list from a season's watch page.
// Episode numbers come from the "SxE" marker when present, falling back to
// document order.
func parseEpisodes(doc *goquery.Document, seasonNumber int) []media.Episode {
	var episodes []media.Episode

	doc.Find("#episode_by_temp li").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Find("a").Attr("href")
		id := lastPathSegment(href)
		if id == "" {
			return
		}

		image, _ := s.Find("img").Attr("src")
		number := strings.TrimSpace(s.Find(".num-epi").Text())

		season, episode := seasonNumber, i+1
		if parts := strings.SplitN(number, "x", 2); len(parts) == 2 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
				season = n
			}
			if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				episode = n
			}
		}
		if number == "" {
			number = fmt.Sprintf("%dx%d", season, episode)
		}

		episodes = append(episodes, media.Episode{
			ID:            id,
			Title:         strings.TrimSpace(s.Find(".entry-title").Text()),
			Image:         image,
			SeasonNumber:  season,
			EpisodeNumber: episode,
			Number:        number,
			URL:           href,
		})
	})

	return episodes
}

// lastPathSegment returns the final path segment of a URL, the provider's
// id convention.
func lastPathSegment(href string) string {
	if href == "" {
		return ""
	}
	trimmed := strings.TrimRight(href, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
