package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Adds files to the staging area
var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Stages files for the next commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addFiles(args)
	},
}

func init() {
	RootCmd.AddCommand(addCmd)
}

func addFiles(args []string) error {
	if len(args) == 0 {
		return errors.New("No files specified")
	}
	return updateSession(func(s *repo.Session) error {
		for _, f := range args {
			verb := "Refreshed"
			if s.Repo.Staging.Add(f) {
				verb = "Staged"
			}
			if _, err := fmt.Fprintf(fOut, "  * %s '%s'\n", verb, f); err != nil {
				return err
			}
		}
		return nil
	})
}
