// Package domain defines the core search entities for sercha-hub.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParameterSet: a structured GitHub search request
//   - ResultSet: one page of typed search hits (Repository, CodeResult,
//     Issue or User) with optional enrichment
//   - ScoredContentItem: a semantic search result
//   - SearchError: the classified failure returned by search clients
//
// The query compiler (CompileQuery) lives here too because it is a pure
// function of ParameterSet.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
