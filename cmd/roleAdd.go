package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Gives a user a role
var roleAddCmd = &cobra.Command{
	Use:   "add [email] [role] [permission...]",
	Short: "Gives a user a role, along with permissions the role allows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleAdd(args, false)
	},
}

// Changes the role of an existing user
var roleUpdateCmd = &cobra.Command{
	Use:   "update [email] [role] [permission...]",
	Short: "Changes the role of a user, adding any given permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleAdd(args, true)
	},
}

func init() {
	roleCmd.AddCommand(roleAddCmd)
	roleCmd.AddCommand(roleUpdateCmd)
}

func roleAdd(args []string, update bool) error {
	if len(args) < 2 {
		return errors.New("An email address and a role are needed")
	}
	id, role, perms := args[0], strings.ToLower(args[1]), splitPerms(args[2:])
	return updateSession(func(s *repo.Session) error {
		var err error
		if update {
			err = s.UpdateRole(id, role, perms)
		} else {
			err = s.GrantRole(id, role, perms)
		}
		if err != nil {
			return err
		}
		info, err := s.Repo.Roles.Lookup(id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(fOut, "'%s' is now %s, with permissions: %s\n", info.Identity, info.Role,
			permList(info.Permissions))
		return err
	})
}

func permList(perms []string) string {
	if len(perms) == 0 {
		return "none"
	}
	return strings.Join(perms, ", ")
}
