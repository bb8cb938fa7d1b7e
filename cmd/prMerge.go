package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/merge"
	"github.com/sqlitebrowser/scvs/repo"
)

// Merges an approved pull request
var prMergeCmd = &cobra.Command{
	Use:   "merge [pull request id]",
	Short: "Merges an approved pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prMerge(args)
	},
}

func init() {
	prCmd.AddCommand(prMergeCmd)
}

func prMerge(args []string) error {
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
		out, err := s.MergePR(id)
		if err != nil {
			return err
		}
		if err = printOutcome(pr.Source, pr.Target, out); err != nil {
			return err
		}
		if out.Kind == merge.NoOp {
			_, err = fmt.Fprintf(fOut, "Pull request #%d left open\n", id)
		} else {
			_, err = fmt.Fprintf(fOut, "Pull request #%d merged\n", id)
		}
		return err
	})
}
