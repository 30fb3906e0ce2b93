package auth

import (
	"os"
	"strings"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
)

// Configuration keys holding provider secrets.
const (
	KeyGitHubToken = "github.token"
	KeyExaAPIKey   = "exa.api_key"
)

// Environment variables that override the stored secrets.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvExaAPIKey   = "EXA_API_KEY"
)

// Resolve builds the provider credentials from the environment and the
// config store. A non-blank environment variable wins over the stored value.
// A nil store is treated as empty.
func Resolve(store driven.ConfigStore) domain.Credentials {
	return ResolveWith(store, os.LookupEnv)
}

// ResolveWith is Resolve with an injectable environment lookup.
func ResolveWith(store driven.ConfigStore, lookup func(string) (string, bool)) domain.Credentials {
	return domain.Credentials{
		GitHubToken: secret(store, lookup, EnvGitHubToken, KeyGitHubToken),
		ExaAPIKey:   secret(store, lookup, EnvExaAPIKey, KeyExaAPIKey),
	}
}

// Source reports where a secret was found: "env", "config" or "".
func Source(store driven.ConfigStore, lookup func(string) (string, bool), env, key string) string {
	if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
		return "env"
	}
	if store != nil && strings.TrimSpace(store.GetString(key)) != "" {
		return "config"
	}
	return ""
}

func secret(store driven.ConfigStore, lookup func(string) (string, bool), env, key string) string {
	if v, ok := lookup(env); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if store == nil {
		return ""
	}
	return strings.TrimSpace(store.GetString(key))
}
