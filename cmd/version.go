package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Displays the version of scvs
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Displays the version of scvs being run",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(fOut, "scvs version %s\n", SCVS_VERSION)
		return err
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
