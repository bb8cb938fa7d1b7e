package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Tags a pull request
var prTagCmd = &cobra.Command{
	Use:   "tag [pull request id] [tag]",
	Short: "Adds a tag to a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prTag(args)
	},
}

func init() {
	prCmd.AddCommand(prTagCmd)
}

func prTag(args []string) error {
	if len(args) != 2 || args[1] == "" {
		return errors.New("A pull request ID and a tag are needed")
	}
	id, err := parsePRID(args[0])
	if err != nil {
		return err
	}
	return updateSession(func(s *repo.Session) error {
		added, err := s.Repo.PRs.AddTag(id, args[1])
		if err != nil {
			return err
		}
		if !added {
			_, err = fmt.Fprintf(fOut, "Pull request #%d is already tagged '%s'\n", id, args[1])
			return err
		}
		_, err = fmt.Fprintf(fOut, "Tag '%s' added to pull request #%d\n", args[1], id)
		return err
	})
}
