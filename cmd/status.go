package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/ident"
)

// Displays the checked out branch and the staging area
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Displays the checked out branch and the files staged for commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return status()
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func status() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "Repository '%s', on branch %s\n", s.Repo.Name, current.Sprint(s.Branch))
	if err != nil {
		return err
	}
	head, err := s.Repo.Branches.ResolveHead(s.Branch)
	if err != nil {
		return err
	}
	if head == "" {
		_, err = fmt.Fprintln(fOut, "No commits yet")
	} else {
		_, err = fmt.Fprintf(fOut, "Last commit: %s\n", ident.Short(head))
	}
	if err != nil {
		return err
	}

	files := s.Repo.Staging.Files()
	if len(files) == 0 {
		_, err = fmt.Fprintln(fOut, "\nNothing staged")
		return err
	}
	_, err = fmt.Fprintf(fOut, "\n%s\n", heading.Sprint("Staged for commit:"))
	if err != nil {
		return err
	}
	for _, f := range files {
		mark := "[ ]"
		if f.Selected {
			mark = "[X]"
		}
		if _, err = fmt.Fprintf(fOut, "  %s %s\n", mark, f.Name); err != nil {
			return err
		}
	}
	_, err = numFormat.Fprintf(fOut, "\n%d files selected\n", len(s.Repo.Staging.Selected()))
	return err
}
