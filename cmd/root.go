// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fahamena420/animeworld/internal/catalog"
	"github.com/fahamena420/animeworld/internal/config"
	"github.com/fahamena420/animeworld/internal/match"
	"github.com/fahamena420/animeworld/internal/provider"
	"github.com/fahamena420/animeworld/internal/resolve"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagServer string
	flagBase   string
	flagPlayer string
	flagJSON   bool
	flagDebug  bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "animeworld",
	Short: "Resolve anime streams from the terminal",
	Long: `Animeworld resolves anime identifiers to playable streams.
Search the catalog, inspect series and servers, resolve direct stream URLs
by native, TMDB or AniList ids, or watch interactively with mpv.`,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Server label or 1-based index")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "Provider base URL")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(tmdbCmd)
	rootCmd.AddCommand(anilistCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagBase != "" {
		cfg.BaseURL = flagBase
	}
	if flagServer != "" {
		cfg.DefaultServer = flagServer
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	return nil
}

// newProvider builds the configured AnimeWorld provider.
func newProvider() *provider.AnimeWorld {
	return provider.NewAnimeWorld(provider.Options{
		BaseURL:      cfg.BaseURL,
		OverridesDir: cfg.OverridesDir,
		ShortTTL:     cfg.ShortTTL(),
		LongTTL:      cfg.LongTTL(),
	})
}

// newService builds the cross-catalog resolution service.
func newService() *resolve.Service {
	return resolve.New(resolve.Options{
		Provider: newProvider(),
		Matcher:  match.NewResolver(cfg.SimilarityThreshold),
		TMDB:     catalog.NewTMDB(catalog.TMDBOptions{APIKey: cfg.TMDBAPIKey}),
		AniList:  catalog.NewAniList(catalog.AniListOptions{}),
		AniZip:   catalog.NewAniZip(catalog.AniZipOptions{}),
	})
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
