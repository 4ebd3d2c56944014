// Package http provides the outbound HTTP client used by the remote
// search integrations.
package http
