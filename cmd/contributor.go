package cmd

import (
	"github.com/spf13/cobra"
)

// contributorCmd groups the collaborator registry commands
var contributorCmd = &cobra.Command{
	Use:     "contributor",
	Aliases: []string{"contributors"},
	Short:   "Manage the collaborators of a repository",
}

func init() {
	RootCmd.AddCommand(contributorCmd)
}
