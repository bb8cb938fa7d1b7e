package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/pullreq"
	"github.com/sqlitebrowser/scvs/repo"
)

// Approves a pull request
var prApproveCmd = &cobra.Command{
	Use:   "approve [pull request id]",
	Short: "Approves a pull request so it can be merged",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prApprove(args)
	},
}

func init() {
	prCmd.AddCommand(prApproveCmd)
}

func prApprove(args []string) error {
	if len(args) != 1 {
		return errors.New("A single pull request ID is needed")
	}
	id, err := parsePRID(args[0])
	if err != nil {
		return err
	}
	return updateSession(func(s *repo.Session) error {
		pr, err := s.Repo.PRs.Find(id)
		if err != nil {
			return err
		}
		if pr.Status == pullreq.Approved {
			return errors.Errorf("Pull request #%d is already approved", id)
		}
		if err = s.ApprovePR(id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(fOut, "Pull request #%d approved\n", id)
		return err
	})
}
