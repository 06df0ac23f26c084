package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart/internal/applog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "javactl",
	Short: "Discover, resolve, and install Java runtimes",
	Long: `javactl is a command-line front-end over the javart library.

It discovers Java installations already on the host, resolves the best
compatible runtime for a launch, and downloads missing runtimes from the
Adoptium catalog.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applog.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(configCmd)
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
}

func printSuccess(format string, args ...interface{}) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}
