// Package exa implements the semantic search transport for the Exa API.
//
// Two endpoints are used: POST /search for prompt-driven content search and
// POST /findSimilar for pages similar to a URL. Filters that are not set are
// omitted from the request body. Results are returned in provider order.
package exa
