// Command docforge ingests local documents into a searchable chunk
// library and serves hybrid search over CLI and MCP.
package main

import (
	"fmt"
	"os"

	"github.com/docforge/docforge/internal/adapters/driven/config/file"
	"github.com/docforge/docforge/internal/adapters/driven/embedding/ollama"
	"github.com/docforge/docforge/internal/adapters/driven/storage/memory"
	"github.com/docforge/docforge/internal/adapters/driven/storage/sqlite"
	"github.com/docforge/docforge/internal/adapters/driven/telemetry"
	"github.com/docforge/docforge/internal/adapters/driving/cli"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/services"
	"github.com/docforge/docforge/internal/parsers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	vector := memory.NewVectorIndex()
	defer vector.Close()

	var embedder driven.EmbeddingService
	if cfg.GetBool("embedding.enabled") {
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		defer embedder.Close()
	}

	registry := parsers.DefaultRegistry(
		parsers.WithChunkLimit(cfg.GetInt("parse.chunk_limit")),
		parsers.WithRouteThreshold(cfg.GetFloat("parse.route_threshold")),
	)

	sink := telemetry.NewLogSink()

	imports := services.NewImportService(
		driven.ImporterFunc(registry.Parse), store, vector, embedder, sink)
	reparses := services.NewReparseService(
		parsers.NewRescanReparser(registry), store, sink)
	search := services.NewHybridSearchService(store, vector, sink)

	cli.Wire(cli.Services{
		Imports:  imports,
		Reparses: reparses,
		Search:   search,
		Store:    store,
		Embedder: embedder,
	})

	return cli.Execute()
}
