package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the turboindex version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("turboindex", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
