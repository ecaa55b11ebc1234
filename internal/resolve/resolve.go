// Package resolve glues the external catalogs to the streaming provider:
// an external id is turned into a title, the title into a provider-native
// id, and the native id into playable sources.
package resolve

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fahamena420/animeworld/internal/catalog"
	"github.com/fahamena420/animeworld/internal/match"
	"github.com/fahamena420/animeworld/internal/media"
	"github.com/fahamena420/animeworld/internal/provider"
)

// Service resolves content across identifier namespaces.
type Service struct {
	provider provider.Provider
	matcher  *match.Resolver
	tmdb     *catalog.TMDB
	anilist  *catalog.AniList
	anizip   *catalog.AniZip
}

// Options configures a Service. Provider is required; a nil Matcher gets
// the default threshold, and the catalog clients are only needed for the
// flows that use them.
type Options struct {
	Provider provider.Provider
	Matcher  *match.Resolver
	TMDB     *catalog.TMDB
	AniList  *catalog.AniList
	AniZip   *catalog.AniZip
}

// New creates a resolution Service.
func New(opts Options) *Service {
	matcher := opts.Matcher
	if matcher == nil {
		matcher = match.NewResolver(0)
	}
	return &Service{
		provider: opts.Provider,
		matcher:  matcher,
		tmdb:     opts.TMDB,
		anilist:  opts.AniList,
		anizip:   opts.AniZip,
	}
}

// NativeID finds the provider-native id for a free-text title.
func (s *Service) NativeID(title string) (string, error) {
	candidates, err := s.provider.Search(title)
	if err != nil {
		return "", fmt.Errorf("searching provider for %q: %w", title, err)
	}

	id, err := s.matcher.Resolve(title, candidates)
	if err != nil {
		return "", fmt.Errorf("matching %q: %w", title, err)
	}
	return id, nil
}

// ByNativeID resolves sources for a provider-native id directly.
func (s *Service) ByNativeID(id, server string) (*media.SourceResolutionResult, error) {
	return s.provider.ResolveSource(id, server)
}

// ByTMDBTV resolves an episode by TMDB show id and season/episode numbers.
func (s *Service) ByTMDBTV(tmdbID, season, episode int, server string) (*media.SourceResolutionResult, error) {
	show, err := s.tmdb.Show(tmdbID)
	if err != nil {
		return nil, err
	}

	nativeID, err := s.NativeID(show.Name)
	if err != nil {
		return nil, err
	}

	episodeID := media.EpisodeID(nativeID, season, episode)
	logrus.Debugf("TMDB show %d mapped to %s", tmdbID, episodeID)
	return s.provider.ResolveSource(episodeID, server)
}

// ByTMDBMovie resolves a movie by TMDB movie id.
func (s *Service) ByTMDBMovie(tmdbID int, server string) (*media.SourceResolutionResult, error) {
	movie, err := s.tmdb.Movie(tmdbID)
	if err != nil {
		return nil, err
	}

	nativeID, err := s.NativeID(movie.Title)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("TMDB movie %d mapped to %s", tmdbID, nativeID)
	return s.provider.ResolveSource(nativeID, server)
}

// ByAniListTV resolves an episode by AniList id. AniList entries map one
// entry per season, so the season number comes from the ani.zip mapping
// and only the episode number is supplied by the caller.
func (s *Service) ByAniListTV(anilistID, episode int, server string) (*media.SourceResolutionResult, error) {
	mapping, err := s.anizip.Mapping(anilistID)
	if err != nil {
		return nil, err
	}

	show, err := s.tmdb.Show(mapping.TMDBID)
	if err != nil {
		return nil, err
	}

	nativeID, err := s.NativeID(show.Name)
	if err != nil {
		return nil, err
	}

	episodeID := media.EpisodeID(nativeID, mapping.SeasonNumber, episode)
	logrus.Debugf("AniList %d mapped to %s", anilistID, episodeID)
	return s.provider.ResolveSource(episodeID, server)
}

// ByAniListMovie resolves a movie by AniList id. The AniList title is
// first normalized through TMDB's movie search, whose titles are closer
// to the provider's catalog naming.
func (s *Service) ByAniListMovie(anilistID int, server string) (*media.SourceResolutionResult, error) {
	entry, err := s.anilist.Media(anilistID)
	if err != nil {
		return nil, err
	}
	if !entry.IsMovie() {
		return nil, fmt.Errorf("AniList %d has format %s: %w", anilistID, entry.Format, catalog.ErrNotAMovie)
	}

	title := entry.PreferredTitle()
	if movies, err := s.tmdb.SearchMovie(title); err == nil && len(movies) > 0 {
		title = movies[0].Title
	} else if err != nil {
		logrus.Warnf("TMDB movie search for %q failed, using the AniList title: %v", title, err)
	}

	nativeID, err := s.NativeID(title)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("AniList movie %d mapped to %s", anilistID, nativeID)
	return s.provider.ResolveSource(nativeID, server)
}
