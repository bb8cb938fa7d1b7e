package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Switches to another branch
var checkoutCmd = &cobra.Command{
	Use:   "checkout [branch name]",
	Short: "Switches the working branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkout(args)
	},
}

func init() {
	RootCmd.AddCommand(checkoutCmd)
}

func checkout(args []string) error {
	if len(args) != 1 {
		return errors.New("A single branch name is needed")
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.Checkout(args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Switched to branch '%s'\n", args[0])
		return err
	})
}
