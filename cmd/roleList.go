package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Lists every user with a role
var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the users with a role, ordered by email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roleList()
	},
}

func init() {
	roleCmd.AddCommand(roleListCmd)
}

func roleList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	list := s.Repo.Roles.List()
	if len(list) == 0 {
		_, err = fmt.Fprintln(fOut, "No roles assigned")
		return err
	}
	_, err = fmt.Fprintf(fOut, "%s\n", heading.Sprintf("%-30s %-12s %s", "Email", "Role", "Permissions"))
	if err != nil {
		return err
	}
	for _, r := range list {
		_, err = fmt.Fprintf(fOut, "%-30s %-12s %s\n", r.Identity, r.Role, permList(r.Permissions))
		if err != nil {
			return err
		}
	}
	return nil
}
