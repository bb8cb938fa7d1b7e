package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/ident"
	"github.com/sqlitebrowser/scvs/merge"
	"github.com/sqlitebrowser/scvs/repo"
)

// Merges one branch into another
var mergeCmd = &cobra.Command{
	Use:   "merge [source branch] [target branch]",
	Short: "Merges the source branch into the target branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mergeBranches(args)
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)
}

func mergeBranches(args []string) error {
	if len(args) != 2 {
		return errors.New("Both a source and a target branch are needed")
	}
	return updateSession(func(s *repo.Session) error {
		out, err := s.Merge(args[0], args[1])
		if err != nil {
			return err
		}
		return printOutcome(args[0], args[1], out)
	})
}

// Tells the user what a merge did
func printOutcome(source, target string, out merge.Outcome) (err error) {
	switch out.Kind {
	case merge.FastForward:
		_, err = fmt.Fprintf(fOut, "Fast-forward: '%s' is now at %s\n", target, ident.Short(out.Head))
	case merge.Synthesized:
		_, err = fmt.Fprintf(fOut, "Merge commit %s created on '%s', merging '%s'\n", ident.Short(out.Head),
			target, source)
	default:
		_, err = fmt.Fprintf(fOut, "Nothing to merge: %s\n", out.Reason)
	}
	return
}
