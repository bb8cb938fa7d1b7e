package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

var prCreateDesc string

// Opens a pull request
var prCreateCmd = &cobra.Command{
	Use:   "create [source branch] [target branch]",
	Short: "Opens a pull request to merge one branch into another",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prCreate(args)
	},
}

func init() {
	prCmd.AddCommand(prCreateCmd)
	prCreateCmd.Flags().StringVar(&prCreateDesc, "description", "", "Description of the pull request")
}

func prCreate(args []string) error {
	if len(args) != 2 {
		return errors.New("Both a source and a target branch are needed")
	}
	return updateSession(func(s *repo.Session) error {
		pr, err := s.CreatePR(args[0], args[1])
		if err != nil {
			return err
		}
		pr.Description = prCreateDesc
		_, err = fmt.Fprintf(fOut, "Created %s\n", pr.Title)
		return err
	})
}
