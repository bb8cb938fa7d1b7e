package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Displays the details of a pull request
var prStatusCmd = &cobra.Command{
	Use:   "status [pull request id]",
	Short: "Displays the details of a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prStatus(args)
	},
}

func init() {
	prCmd.AddCommand(prStatusCmd)
}

func prStatus(args []string) error {
	if len(args) != 1 {
		return errors.New("A single pull request ID is needed")
	}
	id, err := parsePRID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	pr, err := s.Repo.PRs.Find(id)
	if err != nil {
		return err
	}

	none := func(l []string) string {
		if len(l) == 0 {
			return "none"
		}
		return strings.Join(l, ", ")
	}
	out := fmt.Sprintf("%s\n\n", heading.Sprint(pr.Title))
	out += fmt.Sprintf("  Status: %s\n", colourStatus(pr.Status))
	out += fmt.Sprintf("  Author: %s\n", pr.Author)
	out += fmt.Sprintf("  Created: %s\n", pr.CreatedAt.Local().Format(time.UnixDate))
	if pr.ClosedAt != nil {
		out += fmt.Sprintf("  Closed: %s\n", pr.ClosedAt.Local().Format(time.UnixDate))
	}
	if pr.Description != "" {
		out += fmt.Sprintf("  Description: %s\n", pr.Description)
	}
	out += fmt.Sprintf("  Reviewers: %s\n", none(pr.Reviewers))
	out += fmt.Sprintf("  Tags: %s\n", none(pr.Tags))
	out += numFormat.Sprintf("\n  Comments (%d):\n", len(pr.Comments))
	for i, c := range pr.Comments {
		out += fmt.Sprintf("    [%d] %s (%s): %s\n", i+1, c.Author, c.Timestamp.Local().Format(time.UnixDate), c.Text)
	}
	_, err = fmt.Fprint(fOut, out)
	return err
}
