// Package cli implements the sercha-hub command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services wired by bootstrap, or injected by tests.
var (
	searchService     driving.SearchService
	similarityService driving.SimilarityService
	configStore       driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "sercha-hub",
	Short: "Structured GitHub search with semantic enrichment",
	Long: `sercha-hub searches GitHub repositories, code, issues and users with
structured filters and can enrich the results with relevance scores from
Exa semantic search.

Credentials are read from GITHUB_TOKEN and EXA_API_KEY, or from the config
file managed with 'sercha-hub settings'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.toml (default ~/.sercha-hub)")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
