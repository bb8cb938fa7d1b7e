package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/ident"
	"github.com/sqlitebrowser/scvs/repo"
)

// Create a commit of the staged files on the checked out branch
var commitCmd = &cobra.Command{
	Use:   "commit [message]",
	Short: "Records the staged files as a new commit",
	Long: `Records the staged files as a new commit on the checked out branch.

When some staged files are selected, only those are committed.  Otherwise everything in
the staging area is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commit(args)
	},
}

func init() {
	RootCmd.AddCommand(commitCmd)
}

func commit(args []string) error {
	msg := strings.TrimSpace(strings.Join(args, " "))
	if msg == "" {
		return errors.New("No commit message given")
	}
	return updateSession(func(s *repo.Session) error {
		c, err := s.Commit(msg)
		if err != nil {
			return err
		}
		_, err = numFormat.Fprintf(fOut, "Commit %s on '%s' (%d files): %s\n", ident.Short(c.ID), c.Branch,
			len(c.Files), strings.Join(c.Files, ", "))
		return err
	})
}

// Creates the user visible text for a commit
func createCommitText(id, author, date, message string, parents []string) string {
	s := fmt.Sprintf("  commit %s\n", id)
	if len(parents) > 1 {
		short := make([]string, 0, len(parents))
		for _, p := range parents {
			short = append(short, ident.Short(p))
		}
		s += fmt.Sprintf("  Merge: %s\n", strings.Join(short, " "))
	}
	s += fmt.Sprintf("  Author: %s\n", author)
	s += fmt.Sprintf("  Date: %s\n\n", date)
	if message != "" {
		s += fmt.Sprintf("      %s\n", message)
	}
	return s
}
