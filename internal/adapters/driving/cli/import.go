package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/docforge/internal/adapters/driven/watch"
	"github.com/docforge/docforge/internal/core/domain"
)

var importWatchDir string

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Ingest source files into the library",
	Long: `Queues the given files for ingestion. Markdown (.md), plain text
(.txt), and PDF (.pdf) files are supported. Each file becomes an
independent job; the command waits for all jobs to finish and reports
per-file outcomes.

With --watch, the command additionally monitors a directory and imports
files as they appear, until interrupted.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importWatchDir, "watch", "", "directory to monitor for new files")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importQueue == nil {
		return errors.New("import queue not configured")
	}
	if len(args) == 0 && importWatchDir == "" {
		return errors.New("nothing to import: pass files or --watch")
	}

	ctx := context.Background()

	if len(args) > 0 {
		importQueue.Enqueue(ctx, args...)
		importQueue.Wait()

		failed := reportJobs(cmd, importQueue.Jobs(ctx))
		if failed > 0 {
			return fmt.Errorf("%d import(s) failed", failed)
		}
	}

	if importWatchDir != "" {
		watcher := watch.NewWatcher(importWatchDir,
			[]string{".md", ".markdown", ".txt", ".text", ".pdf"}, importQueue)
		cmd.Printf("Watching %s, press Ctrl+C to stop.\n", importWatchDir)
		if err := watcher.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watch failed: %w", err)
		}
	}

	return nil
}

// reportJobs prints one line per job and returns the failure count.
func reportJobs(cmd *cobra.Command, jobs []domain.Job) int {
	failed := 0
	for _, job := range jobs {
		switch job.Status {
		case domain.JobSucceeded:
			cmd.Printf("  ok    %s\n", job.Key)
		case domain.JobFailed:
			cmd.Printf("  FAIL  %s: %s\n", job.Key, job.Error)
			failed++
		default:
			cmd.Printf("  %-5s %s\n", job.Status, job.Key)
		}
	}
	return failed
}
