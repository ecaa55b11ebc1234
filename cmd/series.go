package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series <id>",
	Short: "Show series or movie metadata with all seasons",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := newProvider().Series(args[0])
		if err != nil {
			return fmt.Errorf("fetching series: %w", err)
		}

		if flagJSON {
			return printJSON(series)
		}

		fmt.Printf("%s", series.Title)
		if series.Rating != "" {
			fmt.Printf("  (%s)", series.Rating)
		}
		fmt.Println()
		if series.Description != "" {
			fmt.Println(series.Description)
		}
		for key, value := range series.Metadata {
			fmt.Printf("%s: %s\n", key, value)
		}
		fmt.Printf("%d seasons, %d episodes\n", series.TotalSeasons, series.TotalEpisodes)
		for _, season := range series.Seasons {
			fmt.Printf("  %s (%d episodes)\n", season.Name, len(season.Episodes))
		}
		return nil
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season <id> <number>",
	Short: "List one season's episodes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("season number %q is not an integer", args[1])
		}

		season, err := newProvider().Season(args[0], number)
		if err != nil {
			return fmt.Errorf("fetching season: %w", err)
		}

		if flagJSON {
			return printJSON(season)
		}

		for _, ep := range season.Episodes {
			if ep.Title != "" {
				fmt.Printf("%-8s  %s  (%s)\n", ep.Number, ep.ID, ep.Title)
			} else {
				fmt.Printf("%-8s  %s\n", ep.Number, ep.ID)
			}
		}
		return nil
	},
}
