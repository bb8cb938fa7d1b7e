package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/collab"
	"github.com/sqlitebrowser/scvs/repo"
)

// Adds a collaborator
var contributorAddCmd = &cobra.Command{
	Use:   "add [name] [role]",
	Short: "Adds a collaborator, or changes the role of an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return contributorAdd(args)
	},
}

func init() {
	contributorCmd.AddCommand(contributorAddCmd)
}

func contributorAdd(args []string) error {
	if len(args) == 0 {
		return errors.New("No collaborator name given")
	}
	name, role := args[0], collab.DefaultRole
	if len(args) > 1 {
		role = strings.Join(args[1:], " ")
	}
	return updateSession(func(s *repo.Session) error {
		verb := "updated"
		if s.Repo.Collaborators.Insert(name, role) {
			verb = "added"
		}
		_, err := fmt.Fprintf(fOut, "Collaborator '%s' %s as %s\n", name, verb, role)
		return err
	})
}
