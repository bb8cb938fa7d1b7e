package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

var branchCreateFrom string

// Creates a branch
var branchCreateCmd = &cobra.Command{
	Use:   "create [branch name]",
	Short: "Creates a branch, starting at the head of its parent branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return branchCreate(args)
	},
}

func init() {
	branchCmd.AddCommand(branchCreateCmd)
	branchCreateCmd.Flags().StringVar(&branchCreateFrom, "from", "",
		"Parent branch (default is the checked out branch)")
}

func branchCreate(args []string) error {
	if len(args) != 1 {
		return errors.New("A single branch name is needed")
	}
	return updateSession(func(s *repo.Session) error {
		b, err := s.CreateBranch(args[0], branchCreateFrom)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(fOut, "Branch '%s' created from '%s'\n", b.Name, b.Parent)
		return err
	})
}
