// Package mcp provides an MCP (Model Context Protocol) server adapter for sercha-hub.
// It lets AI assistants run structured GitHub searches and semantic lookups.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrSemanticUnavailable is returned by the similarity tools when no
// semantic provider is configured.
var ErrSemanticUnavailable = errors.New("mcp: semantic search is not configured")
