package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// Dumps the loaded repository snapshot, for troubleshooting
var debugCmd = &cobra.Command{
	Use:    "debug",
	Short:  "Dumps the internal state of the selected repository",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return debugDump()
	},
}

func init() {
	RootCmd.AddCommand(debugCmd)
}

func debugDump() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}
	cfg.Fdump(fOut, s.Repo.Snapshot())
	return nil
}
