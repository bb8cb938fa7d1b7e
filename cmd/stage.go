package cmd

import (
	"github.com/spf13/cobra"
)

// stageCmd groups the commands working on the staging area
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Work with the staging area",
}

func init() {
	RootCmd.AddCommand(stageCmd)
}
