package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Removes a user's role
var roleRemoveCmd = &cobra.Command{
	Use:   "remove [email]",
	Short: "Removes a user's role and all of their permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleRemove(args)
	},
}

func init() {
	roleCmd.AddCommand(roleRemoveCmd)
}

func roleRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("A single email address is needed")
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.Repo.Roles.Revoke(args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Role removed for '%s'\n", args[0])
		return err
	})
}
