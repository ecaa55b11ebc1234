package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the provider catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		results, err := newProvider().Search(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if flagJSON {
			return printJSON(results)
		}

		if len(results) == 0 {
			fmt.Println("no results")
			return nil
		}
		for _, r := range results {
			if r.Rating != "" {
				fmt.Printf("%-40s  %s  (%s)\n", r.ID, r.Title, r.Rating)
			} else {
				fmt.Printf("%-40s  %s\n", r.ID, r.Title)
			}
		}
		return nil
	},
}
