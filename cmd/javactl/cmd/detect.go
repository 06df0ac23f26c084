package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart/internal/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan the host for Java installations",
	Run: func(cmd *cobra.Command, args []string) {
		installs := detect.FindAll()
		if len(installs) == 0 {
			fmt.Println("no Java installations found")
			return
		}
		for i := range installs {
			fmt.Println(detect.Format(&installs[i]))
		}
	},
}
