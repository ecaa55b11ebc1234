package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fahamena420/animeworld/internal/media"
)

var sourceCmd = &cobra.Command{
	Use:   "source <id> [server]",
	Short: "Resolve playable stream URLs for a native id",
	Long: `Resolve playable stream URLs for a provider-native id.
Episode ids follow the {series}-{season}x{episode} convention; anything
else is treated as a movie id. The server argument is a label or a
1-based index and defaults to the configured server.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := cfg.DefaultServer
		if len(args) > 1 {
			server = args[1]
		}

		result, err := newProvider().ResolveSource(args[0], server)
		if err != nil {
			return fmt.Errorf("resolving source: %w", err)
		}

		return printSource(result)
	},
}

func printSource(result *media.SourceResolutionResult) error {
	if flagJSON {
		return printJSON(result)
	}

	fmt.Printf("server %d (%s)\n", result.Server, result.Name)
	if result.Degraded {
		fmt.Println("extraction degraded, embed URL returned")
	}
	for _, src := range result.Sources {
		fmt.Printf("  %-8s  %s\n", src.Quality, src.URL)
	}
	for key, value := range result.Headers {
		fmt.Printf("  header %s: %s\n", key, value)
	}
	return nil
}
