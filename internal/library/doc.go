// Package library manages the on-disk track collection.
package library
