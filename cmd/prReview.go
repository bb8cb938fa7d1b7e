package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Adds a review comment to a pull request
var prReviewCmd = &cobra.Command{
	Use:   "review [pull request id] [comment]",
	Short: "Adds a review comment, and lists you as a reviewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prReview(args)
	},
}

func init() {
	prCmd.AddCommand(prReviewCmd)
}

func prReview(args []string) error {
	if len(args) < 2 {
		return errors.New("A pull request ID and a comment are needed")
	}
	id, err := parsePRID(args[0])
	if err != nil {
		return err
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.ReviewPR(id, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		if _, err := s.Repo.PRs.AddReviewer(id, s.Author); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Review added to pull request #%d\n", id)
		return err
	})
}
