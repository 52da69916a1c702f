package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/docforge/docforge/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show import and reparse job statuses",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if importQueue == nil && reparseQueue == nil {
		return errors.New("queues not configured")
	}

	ctx := context.Background()

	if importQueue != nil {
		cmd.Println("Import jobs:")
		printJobs(cmd, importQueue.Jobs(ctx))
	}
	if reparseQueue != nil {
		cmd.Println("Reparse jobs:")
		printJobs(cmd, reparseQueue.Jobs(ctx))
	}
	return nil
}

func printJobs(cmd *cobra.Command, jobs []domain.Job) {
	if len(jobs) == 0 {
		cmd.Println("  (none)")
		return
	}
	for _, job := range jobs {
		if job.Error != "" {
			cmd.Printf("  %-9s %s: %s\n", job.Status, job.Key, job.Error)
		} else {
			cmd.Printf("  %-9s %s\n", job.Status, job.Key)
		}
	}
}
