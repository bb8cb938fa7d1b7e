package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Selects the default repository, or if no repository name is given it displays the default repository
var selectCmd = &cobra.Command{
	Use:   "select [repository name]",
	Short: "Selects the default repository used by all scvs commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return selectDefault(args)
	},
}

func init() {
	RootCmd.AddCommand(selectCmd)
}

func selectDefault(args []string) error {
	st := getStore()
	if len(args) == 0 {
		name, err := st.Default()
		if err != nil {
			return err
		}
		if name == "" {
			_, err = fmt.Fprintln(fOut, "No default repository selected")
			return err
		}
		_, err = fmt.Fprintf(fOut, "Default repository: '%s'\n", name)
		return err
	}
	if len(args) > 1 {
		return errors.New("Only one repository can be selected as the default")
	}

	name := args[0]
	if !st.Exists(name) {
		return errors.Errorf("Repository '%s' doesn't exist", name)
	}
	err := st.SetDefault(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "Default repository set to '%s'\n", name)
	return err
}
