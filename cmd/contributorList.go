package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Lists the collaborators
var contributorListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the collaborators alphabetically",
	RunE: func(cmd *cobra.Command, args []string) error {
		return contributorList()
	},
}

func init() {
	contributorCmd.AddCommand(contributorListCmd)
}

func contributorList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	list := s.Repo.Collaborators.All()
	if len(list) == 0 {
		_, err = fmt.Fprintln(fOut, "No collaborators")
		return err
	}
	_, err = fmt.Fprintf(fOut, "%s\n\n", heading.Sprintf("Collaborators of %s:", s.Repo.Name))
	if err != nil {
		return err
	}
	for _, c := range list {
		if _, err = fmt.Fprintf(fOut, "  * %s (%s)\n", c.Name, c.Role); err != nil {
			return err
		}
	}
	_, err = numFormat.Fprintf(fOut, "\n%d collaborators\n", len(list))
	return err
}
