package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Looks up a collaborator
var contributorFindCmd = &cobra.Command{
	Use:   "find [name]",
	Short: "Displays the role of a collaborator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return contributorFind(args)
	},
}

func init() {
	contributorCmd.AddCommand(contributorFindCmd)
}

func contributorFind(args []string) error {
	if len(args) != 1 {
		return errors.New("A single collaborator name is needed")
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	c, err := s.Repo.Collaborators.Find(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "%s: %s\n", c.Name, c.Role)
	return err
}
