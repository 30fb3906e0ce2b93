package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-hub/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

type mockSearchService struct {
	result  *domain.ResultSet
	err     error
	params  domain.ParameterSet
	page    int
	perPage int
	enrich  bool
}

func (m *mockSearchService) CombinedSearch(
	_ context.Context, p domain.ParameterSet, page, perPage int, enrich bool,
) (*domain.ResultSet, error) {
	m.params, m.page, m.perPage, m.enrich = p, page, perPage, enrich
	return m.result, m.err
}

type mockSimilarityService struct {
	available bool
	items     []domain.ScoredContentItem
	err       error
	content   domain.ContentSearchRequest
	links     domain.SimilarLinksRequest
}

func (m *mockSimilarityService) Available() bool { return m.available }

func (m *mockSimilarityService) SearchSimilarContent(
	_ context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	m.content = req
	return m.items, m.err
}

func (m *mockSimilarityService) FindSimilarLinks(
	_ context.Context, req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	m.links = req
	return m.items, m.err
}

// setupTestServices installs mocks and a throwaway config store.
func setupTestServices(t *testing.T, search *mockSearchService, sim *mockSimilarityService) *file.ConfigStore {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("EXA_API_KEY", "")

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	origSearch, origSim, origStore := searchService, similarityService, configStore
	searchService, similarityService, configStore = nil, nil, store
	if search != nil {
		searchService = search
	}
	if sim != nil {
		similarityService = sim
	}
	t.Cleanup(func() {
		searchService, similarityService, configStore = origSearch, origSim, origStore
	})
	return store
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func repoResult(t *testing.T, total int, repos ...domain.Repository) *domain.ResultSet {
	t.Helper()
	items := make([]domain.Entity, len(repos))
	for i, r := range repos {
		items[i] = r
	}
	rs, err := domain.NewResultSet("q", domain.KindRepositories, total, 1, 10, items)
	require.NoError(t, err)
	return rs
}

func ptr[T any](v T) *T { return &v }
