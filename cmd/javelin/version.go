package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/javelin"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of javelin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "javelin version %s\n", strings.TrimSpace(javelin.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
