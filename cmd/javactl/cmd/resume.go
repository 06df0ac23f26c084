package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart"
	"github.com/kestrelforge/javart/internal/events"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Replay every pending download left by a previous crash",
	Run: func(cmd *cobra.Command, args []string) {
		result := javart.ResumePendingDownloads(context.Background(), events.NoopSink{})

		fmt.Printf("%d pending, %d succeeded, %d failed\n", result.TotalPending, len(result.SuccessfulInstallations), len(result.FailedDownloads))
		for _, f := range result.FailedDownloads {
			printError("java %d: %v", f.MajorVersion, f.Error)
		}
	},
}
