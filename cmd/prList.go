package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqlitebrowser/scvs/pullreq"
)

// Lists the open and closed pull requests
var prListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the open and closed pull requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prList()
	},
}

func init() {
	prCmd.AddCommand(prListCmd)
}

func prList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	err = printPRs("Open pull requests:", s.Repo.PRs.Open(), false)
	if err != nil {
		return err
	}
	return printPRs("Closed pull requests:", s.Repo.PRs.Closed(), true)
}

func printPRs(title string, list []*pullreq.PullRequest, closed bool) error {
	_, err := fmt.Fprintf(fOut, "%s\n\n", heading.Sprint(title))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err = fmt.Fprint(fOut, "  (none)\n\n")
		return err
	}
	for _, pr := range list {
		_, err = fmt.Fprintf(fOut, "  #%-4d %-20s %s -> %s", pr.ID, colourStatus(pr.Status), pr.Source, pr.Target)
		if err != nil {
			return err
		}
		if closed && pr.ClosedAt != nil {
			_, err = fmt.Fprintf(fOut, "  (closed %s)", pr.ClosedAt.Local().Format(time.UnixDate))
			if err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintln(fOut); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(fOut)
	return err
}
