package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit javart's Java resolution preferences",
}

var configAddPathCmd = &cobra.Command{
	Use:   "add-path <path>",
	Short: "Add a Java install path javart should consider during resolution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return javart.AddUserDefinedPath(args[0])
	},
}

var configRemovePathCmd = &cobra.Command{
	Use:   "remove-path <path>",
	Short: "Remove a previously added Java install path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return javart.RemoveUserDefinedPath(args[0])
	},
}

var configSetPreferredCmd = &cobra.Command{
	Use:   "set-preferred <path>",
	Short: "Set the Java runtime path resolution should prefer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return javart.SetPreferredJavaPath(args[0])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferred Java path",
	Run: func(cmd *cobra.Command, args []string) {
		path := javart.GetPreferredJavaPath()
		if path == "" {
			fmt.Println("no preferred Java path set")
			return
		}
		fmt.Println(path)
	},
}

func init() {
	configCmd.AddCommand(configAddPathCmd)
	configCmd.AddCommand(configRemovePathCmd)
	configCmd.AddCommand(configSetPreferredCmd)
	configCmd.AddCommand(configShowCmd)
}
