package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Checks whether a user holds a permission
var roleCheckCmd = &cobra.Command{
	Use:   "check [email] [permission]",
	Short: "Checks whether a user holds a permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleCheck(args)
	},
}

func init() {
	roleCmd.AddCommand(roleCheckCmd)
}

func roleCheck(args []string) error {
	if len(args) != 2 {
		return errors.New("An email address and a permission are needed")
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	id, perm := args[0], args[1]
	switch {
	case s.Repo.Roles.HasPermission(id, perm):
		_, err = fmt.Fprintf(fOut, "Yes, '%s' has the '%s' permission\n", id, perm)
	case s.Repo.Roles.Exists(id):
		_, err = fmt.Fprintf(fOut, "No, '%s' doesn't have the '%s' permission\n", id, perm)
	default:
		_, err = fmt.Fprintf(fOut, "'%s' has no role\n", id)
	}
	return err
}
