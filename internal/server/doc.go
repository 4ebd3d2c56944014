// Package server exposes the player API and static web UI over HTTP.
package server
