package cmd

import (
	"github.com/spf13/cobra"
)

// prCmd groups the pull request commands
var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Work with pull requests",
}

func init() {
	RootCmd.AddCommand(prCmd)
}
