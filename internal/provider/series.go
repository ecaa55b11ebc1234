package provider

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/httputil"
	"github.com/fahamena420/animeworld/internal/media"
)

// Series returns full metadata for a series or movie id: a static
// override file when present, otherwise a scrape of the movie page (movies
// short-circuit to a single synthetic season) or the series page with all
// seasons' episode lists. Cached one day.
func (a *AnimeWorld) Series(id string) (*media.Series, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid content ID: %w", err)
	}

	return a.seriesCache.Memoize("series_"+id, a.shortTTL, func() (*media.Series, error) {
		if override := a.loadOverride(id); override != nil {
			logrus.Debugf("using static override for %s", id)
			return override, nil
		}

		// Movie pages exist at /movies/{id}; checking there first keeps
		// the series scrape (several fetches) off the movie path.
		if movie, err := a.movieSeries(id); err == nil {
			return movie, nil
		}

		return a.scrapeSeries(id)
	})
}

// Season returns one season of a series, with its episodes. Cached one
// day alongside the series entry.
func (a *AnimeWorld) Season(id string, seasonNumber int) (*media.Season, error) {
	key := fmt.Sprintf("series_%s_season_%d", id, seasonNumber)
	season, err := a.seasonCache.Memoize(key, a.shortTTL, func() (media.Season, error) {
		series, err := a.Series(id)
		if err != nil {
			return media.Season{}, err
		}

		if series.IsMovie {
			// Override files can declare a movie without listing seasons.
			if len(series.Seasons) == 0 {
				return media.Season{}, fmt.Errorf("movie %q has no seasons: %w", id, ErrContentNotFound)
			}
			return series.Seasons[0], nil
		}

		for _, s := range series.Seasons {
			if s.Number == seasonNumber {
				return s, nil
			}
		}
		return media.Season{}, fmt.Errorf("season %d of %q: %w", seasonNumber, id, ErrContentNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// movieSeries builds the single-season representation of a movie page.
func (a *AnimeWorld) movieSeries(id string) (*media.Series, error) {
	url := a.movieURL(id)
	doc, err := a.fetchDocument(url)
	if err != nil {
		return nil, err
	}

	info := parseSeriesInfo(doc, id)
	if info.Title == "" {
		return nil, fmt.Errorf("movie page for %q: %w", id, ErrUpstreamFormatChanged)
	}

	info.IsMovie = true
	info.TotalSeasons = 1
	info.TotalEpisodes = 1
	info.Seasons = []media.Season{{
		ID:     "1",
		Number: 1,
		Name:   "Movie",
		Episodes: []media.Episode{{
			ID:            media.EpisodeID(id, 1, 1),
			Title:         info.Title,
			Image:         info.Poster,
			SeasonNumber:  1,
			EpisodeNumber: 1,
			Number:        "1x1",
			URL:           url,
		}},
	}}
	return info, nil
}

// scrapeSeries scrapes the series page and fans out one fetch per season
// for the episode lists. Seasons whose episode fetch fails stay in the
// result with an empty list.
func (a *AnimeWorld) scrapeSeries(id string) (*media.Series, error) {
	doc, err := a.fetchDocument(a.seriesURL(id))
	if err != nil {
		return nil, fmt.Errorf("series page for %q: %w", id, ErrContentNotFound)
	}

	info := parseSeriesInfo(doc, id)
	if info.Title == "" {
		return nil, fmt.Errorf("series page for %q: %w", id, ErrUpstreamFormatChanged)
	}

	seasons := parseSeasons(doc)
	if len(seasons) == 0 {
		seasons = []media.Season{{ID: "1", Number: 1, Name: "Season 1"}}
	}
	logrus.Debugf("found %d seasons for %s", len(seasons), id)

	// Episode lists live on the watch pages; fetch all seasons at once.
	var wg sync.WaitGroup
	for i := range seasons {
		wg.Add(1)
		go func(season *media.Season) {
			defer wg.Done()
			episodes, err := a.seasonEpisodes(id, season.Number)
			if err != nil {
				logrus.Warnf("fetching episodes for %s season %d: %v", id, season.Number, err)
				return
			}
			season.Episodes = episodes
		}(&seasons[i])
	}
	wg.Wait()

	total := 0
	for _, s := range seasons {
		total += len(s.Episodes)
	}

	info.Seasons = seasons
	info.TotalSeasons = len(seasons)
	info.TotalEpisodes = total
	return info, nil
}

// seasonEpisodes scrapes a season's episode list off the watch page of
// its first episode.
func (a *AnimeWorld) seasonEpisodes(id string, seasonNumber int) ([]media.Episode, error) {
	watchURL := a.episodeURL(media.EpisodeID(id, seasonNumber, 1))
	doc, err := a.fetchDocument(watchURL)
	if err != nil {
		return nil, err
	}

	episodes := parseEpisodes(doc, seasonNumber)
	logrus.Debugf("found %d episodes for %s season %d", len(episodes), id, seasonNumber)
	return episodes, nil
}

// loadOverride reads a static series override file, if configured and
// present. Overrides pre-seed curated metadata for titles the scraper
// mishandles.
func (a *AnimeWorld) loadOverride(id string) *media.Series {
	if a.overridesDir == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(a.overridesDir, id+".json"))
	if err != nil {
		return nil
	}

	var series media.Series
	if err := json.Unmarshal(data, &series); err != nil {
		logrus.Warnf("malformed override file for %s: %v", id, err)
		return nil
	}
	return &series
}
