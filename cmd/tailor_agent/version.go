package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tailor_agent version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tailor_agent %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
