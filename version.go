package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Oliverans/GooseEngine/internal/protocol"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "0.3-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goose",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", protocol.DefaultName, Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
