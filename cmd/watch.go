package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fahamena420/animeworld/internal/media"
	"github.com/fahamena420/animeworld/internal/player"
	"github.com/fahamena420/animeworld/internal/provider"
	"github.com/fahamena420/animeworld/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Search, pick and play interactively",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if query == "" {
			var err error
			query, err = ui.Input("Search")
			if err != nil {
				return fmt.Errorf("no search query provided")
			}
		}

		aw := newProvider()

		results, err := aw.Search(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(results) == 0 {
			return fmt.Errorf("no results for %q", query)
		}

		items := make([]string, len(results))
		for i, r := range results {
			if r.Rating != "" {
				items[i] = fmt.Sprintf("%s (%s)", r.Title, r.Rating)
			} else {
				items[i] = r.Title
			}
		}
		idx, err := ui.Select("Select", items)
		if err != nil {
			return err
		}
		selected := results[idx]

		series, err := aw.Series(selected.ID)
		if err != nil {
			return fmt.Errorf("fetching series: %w", err)
		}

		episode, err := pickEpisode(series)
		if err != nil {
			return err
		}

		serverName, err := pickServer(aw, episode.ID)
		if err != nil {
			return err
		}

		result, err := aw.ResolveSource(episode.ID, serverName)
		if err != nil {
			return fmt.Errorf("resolving source: %w", err)
		}

		title := fmt.Sprintf("%s %s", series.Title, episode.Number)
		if series.IsMovie {
			title = series.Title
		}
		return play(result, title)
	},
}

// pickEpisode walks the season/episode selection. Movies short-circuit to
// their single synthetic episode.
func pickEpisode(series *media.Series) (*media.Episode, error) {
	if len(series.Seasons) == 0 {
		return nil, fmt.Errorf("no seasons found")
	}

	seasonIdx := 0
	if !series.IsMovie && len(series.Seasons) > 1 {
		items := make([]string, len(series.Seasons))
		for i, s := range series.Seasons {
			items[i] = fmt.Sprintf("%s (%d episodes)", s.Name, len(s.Episodes))
		}
		var err error
		seasonIdx, err = ui.Select("Season", items)
		if err != nil {
			return nil, err
		}
	}

	season := series.Seasons[seasonIdx]
	if len(season.Episodes) == 0 {
		return nil, fmt.Errorf("no episodes in %s", season.Name)
	}
	if series.IsMovie {
		return &season.Episodes[0], nil
	}

	items := make([]string, len(season.Episodes))
	for i, ep := range season.Episodes {
		if ep.Title != "" {
			items[i] = fmt.Sprintf("%s  %s", ep.Number, ep.Title)
		} else {
			items[i] = ep.Number
		}
	}
	idx, err := ui.Select("Episode", items)
	if err != nil {
		return nil, err
	}
	return &season.Episodes[idx], nil
}

// pickServer lists the watch page's servers, preselecting the configured
// default when it is present.
func pickServer(aw *provider.AnimeWorld, id string) (string, error) {
	page, err := aw.Player(id)
	if err != nil {
		return "", fmt.Errorf("fetching player page: %w", err)
	}
	if len(page.Sources) == 0 {
		return "", fmt.Errorf("no servers found")
	}

	for _, option := range page.Sources {
		if strings.EqualFold(option.Label, cfg.DefaultServer) {
			return option.Label, nil
		}
	}

	items := make([]string, len(page.Sources))
	for i, option := range page.Sources {
		items[i] = option.Label
	}
	idx, err := ui.Select("Server", items)
	if err != nil {
		return "", err
	}
	return page.Sources[idx].Label, nil
}

// play hands the first resolved source to the configured media player.
func play(result *media.SourceResolutionResult, title string) error {
	if len(result.Sources) == 0 {
		return fmt.Errorf("no sources resolved")
	}

	if flagJSON {
		return printJSON(result)
	}

	if result.Degraded {
		fmt.Println("extraction degraded, playing the embed URL directly")
	}

	p := player.New(strings.ToLower(cfg.Player))
	if !p.Available() {
		return fmt.Errorf("player %s not found in PATH", p.Name())
	}
	return p.Play(result.Sources[0].URL, title, result.Headers["Referer"])
}
