// Package provider holds the error taxonomy shared by all external
// data source adapters.
package provider

import "errors"

var (
	// ErrUpstreamUnavailable signals a transport level failure talking
	// to a provider (connection refused, timeout, non-2xx status).
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	// ErrUpstreamInvalid signals a malformed or empty provider payload.
	ErrUpstreamInvalid = errors.New("upstream returned an invalid or empty response")
)
