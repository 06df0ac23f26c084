package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kestrelforge/javart"
)

var catalogForceRefresh bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List Java releases available from the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := javart.FetchJavaCatalog(context.Background(), catalogForceRefresh)
		if err != nil {
			return err
		}

		for _, r := range cat.Releases {
			if !r.IsAvailable {
				continue
			}
			lts := ""
			if r.IsLTS {
				lts = " (LTS)"
			}
			fmt.Printf("%-4d %-4s %-20s %10s%s\n", r.MajorVersion, r.ImageType, r.Version, humanize.Bytes(uint64(r.FileSize)), lts)
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogForceRefresh, "refresh", false, "bypass the 24h cache and refetch")
}
