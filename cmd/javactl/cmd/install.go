package cmd

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart"
	"github.com/kestrelforge/javart/internal/events"
	"github.com/kestrelforge/javart/internal/tui"
)

var installJRE bool

var installCmd = &cobra.Command{
	Use:   "install <major-version>",
	Short: "Download and install a Java runtime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		major, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid major version %q", args[0])
		}

		imageType := javart.ImageJDK
		if installJRE {
			imageType = javart.ImageJRE
		}

		sink := events.NewChannelSink(64)
		program := tea.NewProgram(tui.NewProgressModel(fmt.Sprintf("Installing Java %d (%s)", major, imageType), sink))

		errCh := make(chan error, 1)
		go func() {
			_, err := javart.DownloadAndInstallJava(context.Background(), major, imageType, sink)
			sink.OnDownloadComplete()
			errCh <- err
		}()

		if _, err := program.Run(); err != nil {
			return err
		}

		if err := <-errCh; err != nil {
			printError("install failed: %v", err)
			return err
		}

		printSuccess("Java %d (%s) installed", major, imageType)
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVar(&installJRE, "jre", false, "install a JRE instead of the full JDK")
}
