package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsLimit int

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List recently imported documents",
	RunE:  runDocuments,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections [document-id]",
	Short: "Show a document's heading skeleton",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func init() {
	documentsCmd.Flags().IntVarP(&documentsLimit, "limit", "n", 20, "maximum number of documents")
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	records, err := documentStore.RecentDocuments(context.Background(), documentsLimit)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No documents imported yet.")
		return nil
	}

	for _, record := range records {
		cmd.Printf("  %s  %-8s  %3d chunks  %s\n",
			record.ID, record.SourceType, record.ChunkCount, record.Title)
		if len(record.LowQualityPages) > 0 {
			cmd.Printf("      low-quality pages: %v\n", record.LowQualityPages)
		}
	}
	return nil
}

func runSections(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	sections, err := documentStore.Sections(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting sections: %w", err)
	}

	if len(sections) == 0 {
		cmd.Println("No sections recorded.")
		return nil
	}

	for _, section := range sections {
		for i := 0; i < section.Level; i++ {
			cmd.Print("  ")
		}
		cmd.Printf("%s (chunk %d)\n", section.Title, section.ChunkStartOrdinal)
	}
	return nil
}
