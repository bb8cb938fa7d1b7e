package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Lists the staged files
var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the staged files and whether they're selected",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stageList()
	},
}

func init() {
	stageCmd.AddCommand(stageListCmd)
}

func stageList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	files := s.Repo.Staging.Files()
	if len(files) == 0 {
		_, err = fmt.Fprintln(fOut, "Nothing staged")
		return err
	}
	for _, f := range files {
		mark := "[ ]"
		if f.Selected {
			mark = "[X]"
		}
		_, err = fmt.Fprintf(fOut, "  %s %-30s (%s) %s\n", mark, f.Name, f.Status, f.Checksum)
		if err != nil {
			return err
		}
	}
	_, err = numFormat.Fprintf(fOut, "\n%d files staged, %d selected\n", len(files), len(s.Repo.Staging.Selected()))
	return err
}
