package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reparseCmd = &cobra.Command{
	Use:   "reparse [document-id]",
	Short: "Re-extract a document's low-quality pages",
	Long: `Queues a document for targeted re-extraction of the pages that were
flagged as low quality during import. At most one reparse job per document
may be queued or running at a time; duplicate requests are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runReparse,
}

func init() {
	rootCmd.AddCommand(reparseCmd)
}

func runReparse(cmd *cobra.Command, args []string) error {
	if reparseQueue == nil {
		return errors.New("reparse queue not configured")
	}

	documentID := args[0]
	ctx := context.Background()

	if !reparseQueue.Enqueue(ctx, documentID) {
		return fmt.Errorf("reparse already in progress for %s", documentID)
	}

	cmd.Printf("Reparsing %s...\n", documentID)
	reparseQueue.Wait()

	failed := reportJobs(cmd, reparseQueue.Jobs(ctx))
	if failed > 0 {
		return errors.New("reparse failed")
	}
	return nil
}
