// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docforge. It enables AI assistants to search the local document library
// and drive imports.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
