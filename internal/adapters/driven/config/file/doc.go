// Package file provides a TOML file-based configuration store.
//
// Configuration keys use dot notation (e.g. "parse.chunk_limit",
// "search.keyword_weight"). Nested TOML tables are flattened on load.
package file
