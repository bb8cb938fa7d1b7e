package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Removes a branch from a repository
var branchRemoveCmd = &cobra.Command{
	Use:   "remove [branch name]",
	Short: "Removes a branch which has no child branches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return branchRemove(args)
	},
}

func init() {
	branchCmd.AddCommand(branchRemoveCmd)
}

func branchRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("A single branch name is needed")
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.DeleteBranch(args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Branch '%s' removed\n", args[0])
		return err
	})
}
