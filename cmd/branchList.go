package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/ident"
)

var branchListTree bool

// Displays the list of branches for a repository
var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the branches of the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		return branchList()
	},
}

func init() {
	branchCmd.AddCommand(branchListCmd)
	branchListCmd.Flags().BoolVar(&branchListTree, "tree", false,
		"Show the branches as the tree they were created in")
}

func branchList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "%s\n\n", heading.Sprintf("Branches for %s:", s.Repo.Name))
	if err != nil {
		return err
	}

	if branchListTree {
		for _, l := range s.Repo.Branches.PreorderDump() {
			if _, err = fmt.Fprintln(fOut, l); err != nil {
				return err
			}
		}
	} else {
		for _, name := range s.Repo.Branches.Names() {
			b, err := s.Repo.Branches.Get(name)
			if err != nil {
				return err
			}
			head := "(empty)"
			if b.Head != "" {
				head = ident.Short(b.Head)
			}
			marker, label := " ", name
			if name == s.Branch {
				marker, label = "*", current.Sprint(name)
			}
			if _, err = fmt.Fprintf(fOut, "  %s %s - Commit: %s\n", marker, label, head); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintf(fOut, "\n    Checked out branch: %s\n\n", s.Branch)
	return err
}
