package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/services"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// contentFlags are shared by the similar and similar-urls commands.
type contentFlags struct {
	numResults     int
	includeDomains []string
	excludeDomains []string
	language       string
	startDate      string
	endDate        string
	minScore       float64
	minDate        string
	maxDate        string
	showDomain     bool
	showText       bool
	json           bool
}

func (c *contentFlags) register(f *pflag.FlagSet) {
	f.IntVarP(&c.numResults, "num-results", "n", domain.DefaultNumResults, "number of results")
	f.StringSliceVar(&c.includeDomains, "include-domain", nil, "only return results from this domain")
	f.StringSliceVar(&c.excludeDomains, "exclude-domain", nil, "never return results from this domain")
	f.StringVar(&c.language, "language", "", "content language")
	f.StringVar(&c.startDate, "start-date", "", "earliest publication date sent to Exa (YYYY-MM-DD)")
	f.StringVar(&c.endDate, "end-date", "", "latest publication date sent to Exa (YYYY-MM-DD)")
	f.Float64Var(&c.minScore, "min-score", 0, "drop results scoring below this")
	f.StringVar(&c.minDate, "min-date", "", "drop results published before this date")
	f.StringVar(&c.maxDate, "max-date", "", "drop results published after this date")
	f.BoolVar(&c.showDomain, "show-domain", false, "print each result's domain")
	f.BoolVar(&c.showText, "show-text", false, "fetch and print page text")
	f.BoolVar(&c.json, "json", false, "output results as JSON")
}

// filterOptions builds the local filter. Unparsable dates are ignored.
func (c *contentFlags) filterOptions(cmd *cobra.Command) services.FilterOptions {
	var opts services.FilterOptions
	if cmd.Flags().Changed("min-score") {
		score := c.minScore
		opts.MinScore = &score
	}
	opts.MinDate = flagDate("min-date", c.minDate)
	opts.MaxDate = flagDate("max-date", c.maxDate)
	return opts
}

func flagDate(name, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, ok := services.ParseContentDate(value)
	if !ok {
		logger.Warn("ignoring --%s %q: expected YYYY-MM-DD", name, value)
		return nil
	}
	return &t
}

var (
	similarFlags struct {
		contentFlags
		mode         string
		autoPrompt   bool
		contentTypes []string
		highlights   bool
	}
	similarURLsFlags struct {
		contentFlags
		textSimilarity bool
	}
)

var similarCmd = &cobra.Command{
	Use:   "similar [prompt]",
	Short: "Find content related to a prompt",
	Long: `Runs an Exa semantic search for a natural language prompt.

Results can be filtered locally by score and publication date with
--min-score, --min-date and --max-date.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var similarURLsCmd = &cobra.Command{
	Use:   "similar-urls [url]",
	Short: "Find pages similar to a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilarURLs,
}

func init() {
	similarFlags.register(similarCmd.Flags())
	similarCmd.Flags().StringVar(&similarFlags.mode, "mode", string(domain.SearchModeNeural), "search mode: neural, keyword or auto")
	similarCmd.Flags().BoolVar(&similarFlags.autoPrompt, "autoprompt", false, "let Exa rewrite the prompt")
	similarCmd.Flags().StringSliceVar(&similarFlags.contentTypes, "content-type", nil, "restrict to a content type")
	similarCmd.Flags().BoolVar(&similarFlags.highlights, "highlights", false, "print matching highlights")

	similarURLsFlags.register(similarURLsCmd.Flags())
	similarURLsCmd.Flags().BoolVar(&similarURLsFlags.textSimilarity, "text-similarity", false, "compare page text rather than links")

	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(similarURLsCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseSearchMode(similarFlags.mode)
	if err != nil {
		return err
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	f := &similarFlags.contentFlags
	items, err := similarityService.SearchSimilarContent(cmd.Context(), domain.ContentSearchRequest{
		Prompt:            args[0],
		NumResults:        f.numResults,
		Mode:              mode,
		AutoPrompt:        similarFlags.autoPrompt,
		IncludeDomains:    f.includeDomains,
		ExcludeDomains:    f.excludeDomains,
		ContentTypes:      similarFlags.contentTypes,
		Language:          f.language,
		DateRange:         domain.DateRange{Start: f.startDate, End: f.endDate},
		IncludeText:       f.showText,
		IncludeHighlights: similarFlags.highlights,
	})
	if err != nil {
		return fmt.Errorf("similarity search failed: %w", err)
	}

	return outputContent(cmd, f, services.FilterContent(items, f.filterOptions(cmd)))
}

func runSimilarURLs(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	f := &similarURLsFlags.contentFlags
	items, err := similarityService.FindSimilarLinks(cmd.Context(), domain.SimilarLinksRequest{
		URL:               args[0],
		NumResults:        f.numResults,
		IncludeDomains:    f.includeDomains,
		ExcludeDomains:    f.excludeDomains,
		Language:          f.language,
		DateRange:         domain.DateRange{Start: f.startDate, End: f.endDate},
		UseTextSimilarity: similarURLsFlags.textSimilarity,
		IncludeText:       f.showText,
	})
	if err != nil {
		return fmt.Errorf("similar urls failed: %w", err)
	}

	return outputContent(cmd, f, services.FilterContent(items, f.filterOptions(cmd)))
}

func outputContent(cmd *cobra.Command, f *contentFlags, items []domain.ScoredContentItem) error {
	if f.json {
		return outputJSON(cmd, items)
	}
	if len(items) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, it := range items {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, it.Title, it.Score)
		cmd.Printf("      %s\n", it.URL)
		if it.PublishedDate != "" {
			cmd.Printf("      Published: %s\n", it.PublishedDate)
		}
		if f.showDomain && it.Domain != "" {
			cmd.Printf("      Domain: %s\n", it.Domain)
		}
		for _, h := range it.Highlights {
			cmd.Printf("      > %s\n", firstLine(h))
		}
		if f.showText && it.Text != "" {
			cmd.Printf("      %s\n", truncate(firstLine(it.Text), 200))
		}
		cmd.Println()
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
