// Package api serves the search services over HTTP.
//
// Routes:
//
//	POST /api/search             structured GitHub search, optional enrichment
//	POST /api/similarity-search  semantic search by prompt
//	POST /api/similar-urls       pages similar to a URL
//	GET  /healthz                liveness and provider availability
//
// Request bodies are JSON and validated with go-playground/validator. Errors
// are returned as {"error": "..."}:
//
//	400  invalid input
//	422  GitHub rejected the compiled query
//	429  client or provider rate limit exceeded
//	502  provider request failed
//	503  provider not configured
//
// Each route keeps its own per-client budget, keyed on the socket address
// unless the server trusts a proxy's forwarding headers.
package api
