package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Removes a collaborator
var contributorRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Removes a collaborator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return contributorRemove(args)
	},
}

func init() {
	contributorCmd.AddCommand(contributorRemoveCmd)
}

func contributorRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("A single collaborator name is needed")
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.Repo.Collaborators.Remove(args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Collaborator '%s' removed\n", args[0])
		return err
	})
}
