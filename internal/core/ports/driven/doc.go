// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SearchTransport: structured search against GitHub. Required for the
//     primary client; nil leaves it unconfigured.
//   - ContentSearchTransport: semantic search against Exa. Optional; when nil
//     or unkeyed, enrichment is skipped and similarity calls fail with a
//     configuration error.
//   - ConfigStore: application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
