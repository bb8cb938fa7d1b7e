package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Empties the staging area
var stageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Removes every file from the staging area",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stageClear(false)
	},
}

// Removes only the selected files from the staging area
var stageClearSelectedCmd = &cobra.Command{
	Use:   "clear-selected",
	Short: "Removes the selected files from the staging area",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stageClear(true)
	},
}

func init() {
	stageCmd.AddCommand(stageClearCmd)
	stageCmd.AddCommand(stageClearSelectedCmd)
}

func stageClear(selectedOnly bool) error {
	return updateSession(func(s *repo.Session) error {
		var n int
		if selectedOnly {
			n = s.Repo.Staging.ClearSelected()
		} else {
			n = s.Repo.Staging.Clear()
		}
		_, err := numFormat.Fprintf(fOut, "%d files removed from the staging area\n", n)
		return err
	})
}
