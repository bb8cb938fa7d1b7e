package cmd

import (
	"github.com/spf13/cobra"
)

// roleCmd groups the access role commands
var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage the access roles and permissions of a repository",
}

func init() {
	RootCmd.AddCommand(roleCmd)
}
