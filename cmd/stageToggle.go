package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Toggles whether staged files are selected for the next commit
var stageToggleCmd = &cobra.Command{
	Use:   "toggle [file...]",
	Short: "Selects or deselects staged files for the next commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stageToggle(args)
	},
}

func init() {
	stageCmd.AddCommand(stageToggleCmd)
}

func stageToggle(args []string) error {
	if len(args) == 0 {
		return errors.New("No files specified")
	}
	return updateSession(func(s *repo.Session) error {
		for _, f := range args {
			on, err := s.Repo.Staging.Toggle(f)
			if err != nil {
				return err
			}
			state := "deselected"
			if on {
				state = "selected"
			}
			if _, err = fmt.Fprintf(fOut, "  * '%s' %s\n", f, state); err != nil {
				return err
			}
		}
		return nil
	})
}
