package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/access"
	"github.com/sqlitebrowser/scvs/ident"
	"github.com/sqlitebrowser/scvs/repo"
)

var initCmdInitial bool

// Creates a new repository, and selects it as the default
var initCmd = &cobra.Command{
	Use:   "init [repository name]",
	Short: "Creates a new repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initRepo(args)
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initCmdInitial, "initial-commit", false,
		"Record an empty initial commit on the main branch")
}

func initRepo(args []string) error {
	if len(args) == 0 {
		return errors.New("No repository name specified")
	}
	if len(args) > 1 {
		return errors.New("Only one repository can be created at a time")
	}
	name := args[0]
	st := getStore()
	if st.Exists(name) {
		return errors.Errorf("Repository '%s' already exists", name)
	}

	s := repo.NewSession(repo.New(name), getAuthor(), access.DefaultPolicy())
	if initCmdInitial {
		c, err := s.InitialCommit()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(fOut, "Initial commit %s created\n", ident.Short(c.ID))
		if err != nil {
			return err
		}
	}
	err := saveSession(s)
	if err != nil {
		return err
	}
	err = st.SetDefault(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fOut, "Repository '%s' initialised\n", name)
	return err
}
