package cmd

import (
	"github.com/spf13/cobra"
)

// branchCmd represents the branch command
var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Work with the branches of a repository",
}

func init() {
	RootCmd.AddCommand(branchCmd)
}
