package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Displays the role of one user
var roleShowCmd = &cobra.Command{
	Use:   "show [email]",
	Short: "Displays the role and permissions of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleShow(args)
	},
}

func init() {
	roleCmd.AddCommand(roleShowCmd)
}

func roleShow(args []string) error {
	if len(args) != 1 {
		return errors.New("A single email address is needed")
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	info, err := s.Repo.Roles.Lookup(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "%s\n  Role: %s\n  Permissions: %s\n", heading.Sprint(info.Identity), info.Role,
		permList(info.Permissions))
	return err
}
