package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

var searchFlags struct {
	kind           string
	language       string
	minStars       string
	maxStars       string
	minForks       string
	maxForks       string
	created        string
	pushed         string
	user           string
	org            string
	includePrivate bool
	includeForks   bool
	topics         []string
	subtopics      []string
	tags           []string
	excludeTopics  []string
	page           int
	perPage        int
	enrich         bool
	json           bool
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search GitHub with structured filters",
	Long: `Runs one GitHub search and prints a page of results.

Filters are compiled into GitHub qualifiers: language, star and fork ranges,
creation and push dates, owner, organization, visibility, forks and topics.
With --enrich, results are matched against Exa semantic search and carry a
relevance score when Exa is configured.

Examples:
  sercha-hub search "http client" --language rust --min-stars 500
  sercha-hub search tokenizer --type code --org huggingface
  sercha-hub search "vector database" --topic database --enrich`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchFlags.kind, "type", "t", "repositories", "result type: repositories, code, issues or users")
	f.StringVarP(&searchFlags.language, "language", "l", "", "programming language")
	f.StringVar(&searchFlags.minStars, "min-stars", "", "minimum stars")
	f.StringVar(&searchFlags.maxStars, "max-stars", "", "maximum stars")
	f.StringVar(&searchFlags.minForks, "min-forks", "", "minimum forks")
	f.StringVar(&searchFlags.maxForks, "max-forks", "", "maximum forks")
	f.StringVar(&searchFlags.created, "created", "", "creation date qualifier, e.g. >2023-01-01")
	f.StringVar(&searchFlags.pushed, "pushed", "", "last push qualifier, e.g. >=2024-06-01")
	f.StringVar(&searchFlags.user, "user", "", "restrict to a user account")
	f.StringVar(&searchFlags.org, "org", "", "restrict to an organization")
	f.BoolVar(&searchFlags.includePrivate, "include-private", false, "do not restrict to public repositories")
	f.BoolVar(&searchFlags.includeForks, "include-forks", false, "include forked repositories")
	f.StringSliceVar(&searchFlags.topics, "topic", nil, "required topic (repeatable or comma-separated)")
	f.StringSliceVar(&searchFlags.subtopics, "subtopic", nil, "required subtopic")
	f.StringSliceVar(&searchFlags.tags, "tag", nil, "required tag")
	f.StringSliceVar(&searchFlags.excludeTopics, "exclude-topic", nil, "topic to exclude")
	f.IntVar(&searchFlags.page, "page", 1, "page number")
	f.IntVarP(&searchFlags.perPage, "per-page", "n", 0, "results per page (default from settings, else 10)")
	f.BoolVar(&searchFlags.enrich, "enrich", false, "attach Exa relevance scores")
	f.BoolVar(&searchFlags.json, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func searchParams(query string) (domain.ParameterSet, error) {
	kind, err := domain.ParseResultKind(searchFlags.kind)
	if err != nil {
		return domain.ParameterSet{}, err
	}

	p := domain.NewParameterSet(query)
	p.Kind = kind
	p.Language = searchFlags.language
	p.Stars = domain.ParseRange(searchFlags.minStars, searchFlags.maxStars)
	p.Forks = domain.ParseRange(searchFlags.minForks, searchFlags.maxForks)
	p.Created = searchFlags.created
	p.Pushed = searchFlags.pushed
	p.Owner = searchFlags.user
	p.Organization = searchFlags.org
	p.PublicOnly = !searchFlags.includePrivate
	p.IncludeForks = searchFlags.includeForks
	p.Topics = domain.CleanList(searchFlags.topics)
	p.Subtopics = domain.CleanList(searchFlags.subtopics)
	p.Tags = domain.CleanList(searchFlags.tags)
	p.ExcludedTopics = domain.CleanList(searchFlags.excludeTopics)
	return p, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	p, err := searchParams(args[0])
	if err != nil {
		return err
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	perPage := searchFlags.perPage
	if perPage <= 0 {
		perPage = defaultPerPage()
	}

	rs, err := searchService.CombinedSearch(cmd.Context(), p, searchFlags.page, perPage, searchFlags.enrich)
	if err != nil {
		if hint := providerHint(err); hint != "" {
			cmd.PrintErrln("Hint: " + hint)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchFlags.json {
		return outputJSON(cmd, rs)
	}
	outputResultSet(cmd, rs)
	return nil
}

// providerHint suggests a fix when GitHub refused the request.
func providerHint(err error) string {
	switch {
	case domain.IsUnauthorized(err):
		return "GitHub rejected the token; check it with 'sercha-hub settings github' or GITHUB_TOKEN."
	case domain.IsQueryRejected(err):
		return "GitHub rejected the query; check the filter values (dates, ranges, owner)."
	case domain.IsRateLimited(err):
		return "GitHub rate limit reached; wait for the reset and retry."
	default:
		return ""
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultSet(cmd *cobra.Command, rs *domain.ResultSet) {
	if rs.Len() == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Found %d %s (page %d):\n\n", rs.TotalCount, rs.Kind, rs.Page)
	for i, e := range rs.Items() {
		title, detail := describe(e)
		cmd.Printf("  [%d] %s\n", i+1, title)
		if detail != "" {
			cmd.Printf("      %s\n", detail)
		}
		cmd.Printf("      %s\n", e.Link())
		if line := enrichmentLine(e.GetEnrichment()); line != "" {
			cmd.Printf("      %s\n", line)
		}
		cmd.Println()
	}

	if rs.HasNextPage() {
		cmd.Printf("More results: --page %d\n", rs.Page+1)
	}
}

// describe returns a one-line title and an optional detail line.
func describe(e domain.Entity) (title, detail string) {
	switch v := e.(type) {
	case domain.Repository:
		title = fmt.Sprintf("%s (%d stars)", v.FullName, v.Stars)
		parts := []string{}
		if v.Language != "" {
			parts = append(parts, v.Language)
		}
		if v.Description != "" {
			parts = append(parts, v.Description)
		}
		detail = strings.Join(parts, " - ")
	case domain.CodeResult:
		title = fmt.Sprintf("%s: %s", v.Repository.FullName, v.Path)
		if len(v.TextMatches) > 0 {
			detail = firstLine(v.TextMatches[0].Fragment)
		}
	case domain.Issue:
		kind := "issue"
		if v.IsPullRequest() {
			kind = "pull request"
		}
		title = fmt.Sprintf("#%d %s", v.Number, v.Title)
		detail = fmt.Sprintf("%s, %s, %d comments", kind, v.State, v.Comments)
	case domain.User:
		title = v.Login
		if v.Name != "" {
			title = fmt.Sprintf("%s (%s)", v.Login, v.Name)
		}
		detail = v.Bio
	}
	return title, detail
}

func enrichmentLine(e domain.Enrichment) string {
	if e.RelevanceScore == nil {
		return ""
	}
	line := fmt.Sprintf("Relevance: %.2f", *e.RelevanceScore)
	if e.SemanticSimilarity != nil {
		line += fmt.Sprintf("  Similarity: %.2f", *e.SemanticSimilarity)
	}
	return line
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
