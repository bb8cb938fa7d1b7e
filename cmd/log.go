package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logCmdLimit int

// Displays the first parent history of the checked out branch
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Displays the history of the checked out branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showLog()
	},
}

func init() {
	RootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVar(&logCmdLimit, "limit", 0,
		"Maximum number of commits to show (default from general.loglimit)")
}

func showLog() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	limit := logCmdLimit
	if limit <= 0 {
		limit = viper.GetInt("general.loglimit")
	}
	list, err := s.Log(limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err = fmt.Fprintf(fOut, "Branch '%s' has no commits\n", s.Branch)
		return err
	}

	_, err = fmt.Fprintf(fOut, "%s\n\n", heading.Sprintf("History of branch '%s':", s.Branch))
	if err != nil {
		return err
	}
	for _, c := range list {
		_, err = fmt.Fprint(fOut, createCommitText(c.ID, c.Author, c.Timestamp.Local().Format(time.UnixDate),
			c.Message, c.Parents))
		if err != nil {
			return err
		}
		if c.Message != "" {
			if _, err = fmt.Fprintln(fOut); err != nil {
				return err
			}
		}
	}
	return nil
}
