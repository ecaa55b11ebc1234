package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var anilistCmd = &cobra.Command{
	Use:   "anilist",
	Short: "Resolve streams by AniList id",
}

var anilistTVCmd = &cobra.Command{
	Use:   "tv <id> <episode>",
	Short: "Resolve an episode by AniList id",
	Long: `Resolve an episode by AniList id. AniList tracks each season as
its own entry, so only the episode number is needed; the season comes
from the entry's TMDB mapping.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("AniList id %q is not an integer", args[0])
		}
		episode, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("episode %q is not an integer", args[1])
		}

		result, err := newService().ByAniListTV(id, episode, cfg.DefaultServer)
		if err != nil {
			return fmt.Errorf("resolving AniList episode: %w", err)
		}
		return printSource(result)
	},
}

var anilistMovieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Resolve a movie by AniList id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("AniList id %q is not an integer", args[0])
		}

		result, err := newService().ByAniListMovie(id, cfg.DefaultServer)
		if err != nil {
			return fmt.Errorf("resolving AniList movie: %w", err)
		}
		return printSource(result)
	},
}

func init() {
	anilistCmd.AddCommand(anilistTVCmd)
	anilistCmd.AddCommand(anilistMovieCmd)
}
