package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "List the server options on a watch page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := newProvider().Player(args[0])
		if err != nil {
			return fmt.Errorf("fetching player page: %w", err)
		}

		if flagJSON {
			return printJSON(page)
		}

		for _, option := range page.Sources {
			marker := " "
			if option.Active {
				marker = "*"
			}
			fmt.Printf("%s %d  %-20s  %s\n", marker, option.Index, option.Label, option.EmbedURL)
		}
		return nil
	},
}
