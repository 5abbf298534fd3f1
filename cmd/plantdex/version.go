package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/plantdex/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// No config needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("plantdex %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
