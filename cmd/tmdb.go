package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var tmdbCmd = &cobra.Command{
	Use:   "tmdb",
	Short: "Resolve streams by TMDB id",
}

var tmdbTVCmd = &cobra.Command{
	Use:   "tv <id> <season> <episode>",
	Short: "Resolve a TV episode by TMDB show id",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, season, episode, err := parseThree(args)
		if err != nil {
			return err
		}

		result, err := newService().ByTMDBTV(id, season, episode, cfg.DefaultServer)
		if err != nil {
			return fmt.Errorf("resolving TMDB episode: %w", err)
		}
		return printSource(result)
	},
}

var tmdbMovieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Resolve a movie by TMDB movie id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("TMDB id %q is not an integer", args[0])
		}

		result, err := newService().ByTMDBMovie(id, cfg.DefaultServer)
		if err != nil {
			return fmt.Errorf("resolving TMDB movie: %w", err)
		}
		return printSource(result)
	},
}

func init() {
	tmdbCmd.AddCommand(tmdbTVCmd)
	tmdbCmd.AddCommand(tmdbMovieCmd)
}

func parseThree(args []string) (int, int, int, error) {
	values := make([]int, 3)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%q is not an integer", arg)
		}
		values[i] = n
	}
	return values[0], values[1], values[2], nil
}
