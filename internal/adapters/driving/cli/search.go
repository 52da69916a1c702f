package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/docforge/internal/core/domain"
)

var (
	searchLimit         int
	searchJSON          bool
	searchKeywordWeight float64
	searchVectorWeight  float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested chunks",
	Long: `Performs hybrid search across all ingested chunks.
Combines keyword (substring) and semantic (vector) rankings.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().Float64Var(&searchKeywordWeight, "keyword-weight", 1.0, "weight of the keyword ranking")
	searchCmd.Flags().Float64Var(&searchVectorWeight, "vector-weight", 1.0, "weight of the vector ranking")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()

	var embedding []float32
	if embedder != nil {
		var err error
		embedding, err = embedder.Embed(ctx, query)
		if err != nil {
			return fmt.Errorf("embedding query: %w", err)
		}
	}

	opts := domain.SearchOptions{
		Limit:         searchLimit,
		KeywordWeight: searchKeywordWeight,
		VectorWeight:  searchVectorWeight,
	}

	results, err := searchService.Search(ctx, query, embedding, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RankedChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RankedChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		snippet := results[i].Chunk.Text
		if runes := []rune(snippet); len(runes) > 160 {
			snippet = string(runes[:160]) + "..."
		}

		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, results[i].Chunk.DocumentID, results[i].Chunk.Ordinal, results[i].Score)
		cmd.Printf("      %s\n", snippet)
		cmd.Println()
	}

	return nil
}
