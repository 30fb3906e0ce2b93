// Package github implements the structured search transport for GitHub.
//
// The client issues GET search/{repositories,code,issues,users} requests
// with the compiled query string, page and per_page, and returns the raw
// items untouched. Parsing into typed entities happens in the core.
//
// # Authentication
//
// Personal access tokens and OAuth access tokens are both supported and are
// sent through an oauth2 static token source. A client without a token can
// be built, but the core never calls it.
//
// # Rate Limiting
//
// The search API allows 30 authenticated requests per minute. The client
// implements a dual-strategy approach:
//
//  1. Proactive throttling: a token bucket limits requests to 0.5 per
//     second with a burst of 10, so interactive use is not delayed.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When the quota is exhausted, it waits until
//     the reset time before continuing.
//
// Responses that still hit the limit surface as [RateLimitError]; other
// non-2xx responses as [APIError]. Neither is retried.
//
// # Media Types
//
// Code searches request application/vnd.github.v3.text-match+json so that
// fragments and match indices are returned with each hit.
package github
