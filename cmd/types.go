package cmd

import (
	"github.com/fatih/color"

	"github.com/sqlitebrowser/scvs/pullreq"
)

const SCVS_VERSION = "0.1.0"

// Colours used when displaying pull request states
var prStatusColour = map[pullreq.Status]*color.Color{
	pullreq.Pending:  color.New(color.FgYellow),
	pullreq.InReview: color.New(color.FgCyan),
	pullreq.Approved: color.New(color.FgGreen),
	pullreq.Rejected: color.New(color.FgRed),
	pullreq.Merged:   color.New(color.FgMagenta),
}

func colourStatus(s pullreq.Status) string {
	if c, ok := prStatusColour[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}
