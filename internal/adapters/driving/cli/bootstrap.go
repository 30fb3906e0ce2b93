package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-hub/internal/adapters/driven/auth"
	"github.com/custodia-labs/sercha-hub/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-hub/internal/connectors/exa"
	"github.com/custodia-labs/sercha-hub/internal/connectors/github"
	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-hub/internal/core/services"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// Config keys beyond the credentials.
const (
	keyGitHubBaseURL = "github.base_url"
	keyExaBaseURL    = "exa.base_url"
	keyPerPage       = "search.per_page"
)

// ensureConfig opens the config store once.
func ensureConfig() error {
	if configStore != nil {
		return nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store
	return nil
}

// ensureServices wires the transports and services from the config store
// and environment. Missing credentials leave the affected client
// unconfigured; it reports that when used.
func ensureServices(ctx context.Context) error {
	if searchService != nil {
		return nil
	}
	if err := ensureConfig(); err != nil {
		return err
	}

	creds := auth.Resolve(configStore)
	logger.Debug("config: %s (github=%t, exa=%t)", configStore.Path(), creds.HasPrimary(), creds.HasSecondary())

	gh, err := github.NewClient(ctx, github.Config{
		Token:   creds.GitHubToken,
		BaseURL: configStore.GetString(keyGitHubBaseURL),
	})
	if err != nil {
		return err
	}

	var content driven.ContentSearchTransport
	if creds.HasSecondary() {
		ex, err := exa.NewClient(exa.Config{
			APIKey:  creds.ExaAPIKey,
			BaseURL: configStore.GetString(keyExaBaseURL),
		})
		if err != nil {
			return err
		}
		content = ex
	}

	similarity := services.NewSimilarityClient(content, creds)
	similarityService = similarity
	searchService = services.NewSearchService(services.NewPrimarySearchClient(gh, creds), similarity)
	return nil
}

// defaultPerPage returns the configured page size, falling back to the
// built-in default.
func defaultPerPage() int {
	if configStore != nil {
		if n := configStore.GetInt(keyPerPage); n > 0 {
			return n
		}
	}
	return domain.DefaultPerPage
}
