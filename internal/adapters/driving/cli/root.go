// Package cli implements the docforge command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/services"
	"github.com/docforge/docforge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Set through Wire before Execute.
var (
	importQueue   *services.ImportService
	reparseQueue  *services.ReparseService
	searchService *services.HybridSearchService
	documentStore driven.DocumentStore
	embedder      driven.EmbeddingService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Local document ingestion and hybrid search",
	Long: `docforge ingests Markdown, plain text, and PDF files into a local
library of searchable chunks. PDF pages are scored for extraction quality
and low-quality pages can be re-extracted later through the reparse queue.
Search fuses keyword and semantic rankings.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the CLI commands need.
type Services struct {
	Imports  *services.ImportService
	Reparses *services.ReparseService
	Search   *services.HybridSearchService
	Store    driven.DocumentStore
	Embedder driven.EmbeddingService
}

// Wire injects the core services into the command tree.
func Wire(s Services) {
	importQueue = s.Imports
	reparseQueue = s.Reparses
	searchService = s.Search
	documentStore = s.Store
	embedder = s.Embedder
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
