package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/repo"
)

// Rejects a pull request
var prRejectCmd = &cobra.Command{
	Use:   "reject [pull request id] [reason]",
	Short: "Rejects and closes a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prReject(args)
	},
}

func init() {
	prCmd.AddCommand(prRejectCmd)
}

func prReject(args []string) error {
	if len(args) == 0 {
		return errors.New("No pull request ID given")
	}
	id, err := parsePRID(args[0])
	if err != nil {
		return err
	}
	return updateSession(func(s *repo.Session) error {
		if err := s.RejectPR(id, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		_, err := fmt.Fprintf(fOut, "Pull request #%d rejected\n", id)
		return err
	})
}
